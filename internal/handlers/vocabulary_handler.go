package handlers

import "net/http"

// VocabularyHandler serves the vocabulary list. The list is compiled
// into the binary, so the handler carries no state.
type VocabularyHandler struct{}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler() *VocabularyHandler {
	return &VocabularyHandler{}
}

// GetVocabulary returns every vocabulary entry with its audio clip URL
func (h *VocabularyHandler) GetVocabulary(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, buildVocabularyViews())
}
