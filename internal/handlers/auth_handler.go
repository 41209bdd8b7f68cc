package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"lingodrill/internal/models"
	"lingodrill/internal/security"
	"lingodrill/internal/service"
)

// AuthHandler handles sign-in and sign-out
type AuthHandler struct {
	authService *service.AuthService
	templates   *template.Template
	google      *GoogleOAuth
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, templates *template.Template, google *GoogleOAuth) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		templates:   templates,
		google:      google,
	}
}

// Home routes the root URL by session state
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())
	switch state.Phase {
	case models.PhaseReady:
		http.Redirect(w, r, "/home", http.StatusSeeOther)
	case models.PhaseNeedsProfile:
		http.Redirect(w, r, "/setup", http.StatusSeeOther)
	default:
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}

// ShowLogin renders the login page. Signed-in learners are sent back to
// the root router instead.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	state := GetSessionState(r.Context())
	if state.Identity != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderLogin(w, LoginViewData{
		Title:         "Sign in - LingoDrill",
		TokenEnabled:  h.authService.TokenSignInEnabled(),
		GoogleEnabled: h.google.Enabled(),
	})
}

// SignIn handles the login form. An empty token field means anonymous
// sign-in; otherwise the value is verified as a custom sign-in token.
// Failures all render the same message so the form leaks nothing about
// why a token was rejected.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Error parsing sign-in form", err)
		return
	}

	token := strings.TrimSpace(r.FormValue("token"))

	var (
		session *models.Session
		err     error
	)
	if token == "" {
		session, err = h.authService.SignInAnonymous()
	} else {
		session, err = h.authService.SignInWithToken(r.Context(), token)
	}
	if err != nil {
		log.Printf("Sign-in failed: %v", err)
		h.renderLogin(w, LoginViewData{
			Title:         "Sign in - LingoDrill",
			Error:         SignInFailedMessage,
			TokenEnabled:  h.authService.TokenSignInEnabled(),
			GoogleEnabled: h.google.Enabled(),
		})
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, security.SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SignOut ends the session and clears the cookie
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if sessionID := sessionIDFromRequest(r); sessionID != "" {
		if err := h.authService.SignOut(sessionID); err != nil {
			log.Printf("Error deleting session: %v", err)
		}
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, security.SessionCookieName))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// SessionState returns the resolved session state as JSON. The page
// shell polls it after sign-in and profile setup.
func (h *AuthHandler) SessionState(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, GetSessionState(r.Context()))
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, data LoginViewData) {
	if err := h.templates.ExecuteTemplate(w, "login.tmpl", data); err != nil {
		log.Printf("Error rendering login template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
