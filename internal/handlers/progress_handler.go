package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"lingodrill/internal/service"
)

// ProgressHandler serves lesson progress reads, completions and the
// live progress stream
type ProgressHandler struct {
	progressService *service.ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// GetProgress returns the learner's progress snapshot
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())

	snapshot, err := h.progressService.Snapshot(r.Context(), state.Identity)
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, "Failed to load progress", "Error loading progress", err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}

// CompleteLesson marks a lesson as finished and returns the updated
// snapshot. Unlike the drill result writes this one surfaces storage
// failures, so the page can tell the learner their progress did not
// stick.
func (h *ProgressHandler) CompleteLesson(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())
	lessonID := r.PathValue("lessonID")

	snapshot, err := h.progressService.MarkLessonComplete(r.Context(), state.Identity, lessonID, displayName(state))
	if errors.Is(err, service.ErrUnknownLesson) {
		respondWithJSONError(w, http.StatusBadRequest, "Unknown lesson", "", err)
		return
	}
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, "Failed to save your progress. Please try again.", "Error saving lesson completion", err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}

// StreamProgress pushes progress snapshots as server-sent events until
// the client disconnects. The first event is the current snapshot so a
// fresh page paints without waiting for a change.
func (h *ProgressHandler) StreamProgress(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithError(w, http.StatusInternalServerError, "Streaming unsupported", "", nil)
		return
	}

	sub, err := h.progressService.Watch(r.Context(), state.Identity)
	if err != nil {
		respondWithJSONError(w, http.StatusInternalServerError, "Failed to open progress stream", "Error opening progress watch", err)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	snapshot, err := h.progressService.Snapshot(r.Context(), state.Identity)
	if err != nil {
		log.Printf("Error loading initial progress snapshot: %v", err)
	} else if err := writeProgressEvent(w, flusher, snapshot); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case doc, ok := <-sub.Updates():
			if !ok {
				return
			}
			snapshot, err := h.progressService.SnapshotFromDocument(state.Identity, &doc)
			if err != nil {
				log.Printf("Error decoding progress update: %v", err)
				continue
			}
			if err := writeProgressEvent(w, flusher, snapshot); err != nil {
				return
			}
		}
	}
}

func writeProgressEvent(w http.ResponseWriter, flusher http.Flusher, snapshot *service.ProgressSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
