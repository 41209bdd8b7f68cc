package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lingodrill/internal/service"
)

// DictationHandler serves the dictation drill API
type DictationHandler struct {
	dictationService *service.DictationService
}

// NewDictationHandler creates a new dictation handler
func NewDictationHandler(dictationService *service.DictationService) *DictationHandler {
	return &DictationHandler{dictationService: dictationService}
}

// CheckDictation scores a typed answer against the lesson's sentence
// and returns the verdict with the reference sentence
func (h *DictationHandler) CheckDictation(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())

	var req struct {
		LessonID string `json:"lessonId"`
		Answer   string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSONError(w, http.StatusBadRequest, ErrInvalidRequestBody, "Error decoding dictation request", err)
		return
	}

	outcome, err := h.dictationService.CheckAnswer(r.Context(), state.Identity, displayName(state), req.LessonID, req.Answer)
	if errors.Is(err, service.ErrUnknownLesson) {
		respondWithJSONError(w, http.StatusBadRequest, "Unknown lesson", "", err)
		return
	}
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, "Could not check your answer", "Error checking dictation answer", err)
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}
