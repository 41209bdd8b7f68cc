package handlers

import (
	"errors"
	"net/http"

	"lingodrill/internal/service"
)

// SpeakingHandler serves the speaking practice API
type SpeakingHandler struct {
	speakingService *service.SpeakingService
	maxUploadSize   int64
}

// NewSpeakingHandler creates a new speaking handler
func NewSpeakingHandler(speakingService *service.SpeakingService, maxUploadSize int64) *SpeakingHandler {
	return &SpeakingHandler{
		speakingService: speakingService,
		maxUploadSize:   maxUploadSize,
	}
}

// SubmitSpeaking accepts a recorded clip as multipart form data and
// returns the transcription with feedback. Feedback trouble degrades to
// a canned message; only a failure to keep the recording is an error.
func (h *SpeakingHandler) SubmitSpeaking(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		respondWithJSONError(w, http.StatusRequestEntityTooLarge, "Recording is too large", "Error parsing speaking upload", err)
		return
	}

	lessonID := r.FormValue("lessonId")
	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithJSONError(w, http.StatusBadRequest, "Missing audio file", "Error reading speaking upload", err)
		return
	}
	defer file.Close()

	outcome, err := h.speakingService.SubmitRecording(r.Context(), state.Identity, displayName(state), lessonID, file, header.Header.Get("Content-Type"))
	if errors.Is(err, service.ErrUnknownLesson) {
		respondWithJSONError(w, http.StatusBadRequest, "Unknown lesson", "", err)
		return
	}
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, "Could not save your recording. Please try again.", "Error handling speaking submission", err)
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}
