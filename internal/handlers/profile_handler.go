package handlers

import (
	"context"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"lingodrill/internal/models"
	"lingodrill/internal/security"
	"lingodrill/internal/service"
)

// ProfileHandler handles the profile setup flow
type ProfileHandler struct {
	profileService *service.ProfileService
	emailService   *service.EmailService
	templates      *template.Template
	csrf           *security.CSRFGenerator
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *service.ProfileService, emailService *service.EmailService, templates *template.Template, csrf *security.CSRFGenerator) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		emailService:   emailService,
		templates:      templates,
		csrf:           csrf,
	}
}

// ShowSetup renders the profile setup page. Learners who already have a
// profile are sent straight to the practice page.
func (h *ProfileHandler) ShowSetup(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())
	if state.Phase == models.PhaseReady {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}

	h.renderSetup(w, r, SetupViewData{
		Title:       "Set up your profile - LingoDrill",
		Suggestions: h.profileService.SuggestedNames(3),
	})
}

// CreateProfile handles the setup form submission
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())

	name := r.FormValue("display_name")
	email := r.FormValue("email")

	profile, err := h.profileService.CreateProfile(r.Context(), state.Identity, name, email)
	if errors.Is(err, service.ErrProfileExists) {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.renderSetup(w, r, SetupViewData{
			Title:       "Set up your profile - LingoDrill",
			Error:       err.Error(),
			DisplayName: name,
			Email:       email,
			Suggestions: h.profileService.SuggestedNames(3),
		})
		return
	}

	if profile.Email != "" && h.emailService != nil {
		go h.sendWelcome(profile.Email, profile.DisplayName)
	}

	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// sendWelcome fires the welcome email off the request path. A failed
// send never disturbs the setup flow.
func (h *ProfileHandler) sendWelcome(toEmail, toName string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.emailService.SendWelcomeEmail(ctx, toEmail, toName); err != nil {
		log.Printf("Warning: failed to send welcome email: %v", err)
	}
}

// renderSetup stamps a CSRF token into the form before rendering
func (h *ProfileHandler) renderSetup(w http.ResponseWriter, r *http.Request, data SetupViewData) {
	token, err := h.csrf.GenerateToken(sessionIDFromRequest(r))
	if err != nil {
		log.Printf("Error generating CSRF token: %v", err)
	}
	data.CSRFToken = token

	if err := h.templates.ExecuteTemplate(w, "setup.tmpl", data); err != nil {
		log.Printf("Error rendering setup template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
