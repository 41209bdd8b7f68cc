package handlers

import (
	"html/template"
	"log"
	"net/http"

	"lingodrill/internal/models"
	"lingodrill/internal/service"
)

// HomeHandler renders the practice page
type HomeHandler struct {
	progressService *service.ProgressService
	templates       *template.Template
}

// NewHomeHandler creates a new home handler
func NewHomeHandler(progressService *service.ProgressService, templates *template.Template) *HomeHandler {
	return &HomeHandler{
		progressService: progressService,
		templates:       templates,
	}
}

// ShowHome renders the practice panels and the lesson progress strip
func (h *HomeHandler) ShowHome(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())
	if state.Phase != models.PhaseReady {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	snapshot, err := h.progressService.Snapshot(r.Context(), state.Identity)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading progress", err)
		return
	}

	lessons := buildLessonViews(snapshot)
	data := HomeViewData{
		Title:      "Practice - LingoDrill",
		Profile:    state.Profile,
		Snapshot:   snapshot,
		Lessons:    lessons,
		Vocabulary: buildVocabularyViews(),
	}
	if !snapshot.AllComplete {
		data.CurrentLesson = &lessons[snapshot.NextIndex]
	}

	if err := h.templates.ExecuteTemplate(w, "home.tmpl", data); err != nil {
		log.Printf("Error rendering home template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
