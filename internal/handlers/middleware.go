package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"lingodrill/internal/models"
	"lingodrill/internal/security"
	"lingodrill/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionStateContextKey ContextKey = "sessionState"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	csrf        *security.CSRFGenerator
	limiter     *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService, csrf *security.CSRFGenerator, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		authService: authService,
		csrf:        csrf,
		limiter:     limiter,
	}
}

// WithSession resolves the browser session into a SessionState and puts
// it on the request context. Resolution failures are logged and the
// request proceeds as logged out, so pages always render.
func (m *Middleware) WithSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := m.authService.ResolveSession(r.Context(), sessionIDFromRequest(r))
		if err != nil {
			log.Printf("Error resolving session: %v", err)
		}

		ctx := context.WithValue(r.Context(), SessionStateContextKey, state)
		next(w, r.WithContext(ctx))
	}
}

// RequireIdentity admits any signed-in session, profile or not. The
// setup flow runs behind it.
func (m *Middleware) RequireIdentity(next http.HandlerFunc) http.HandlerFunc {
	return m.WithSession(func(w http.ResponseWriter, r *http.Request) {
		state := GetSessionState(r.Context())
		if state.Identity == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	})
}

// RequireReady admits only sessions whose profile is complete. API
// routes use it and answer 401 as JSON rather than redirecting.
func (m *Middleware) RequireReady(next http.HandlerFunc) http.HandlerFunc {
	return m.WithSession(func(w http.ResponseWriter, r *http.Request) {
		state := GetSessionState(r.Context())
		if state.Phase != models.PhaseReady {
			respondWithJSONError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}
		next(w, r)
	})
}

// RateLimit throttles requests per client IP. Sign-in posts run behind
// it to slow down token guessing.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			log.Printf("Rate limit exceeded for %s on %s", ip, r.URL.Path)
			http.Error(w, "Too many attempts. Please wait a moment.", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// CSRFProtect validates the csrf_token form field against the session
// before letting a state-changing form post through
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "Error parsing form", err)
			return
		}

		sessionID := sessionIDFromRequest(r)
		if sessionID == "" || !m.csrf.ValidateToken(sessionID, r.FormValue("csrf_token")) {
			log.Printf("Rejected form post with invalid CSRF token on %s", r.URL.Path)
			http.Error(w, "Invalid or expired form token", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// sessionIDFromRequest reads the session cookie, returning "" when the
// browser sent none
func sessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(security.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetSessionState retrieves the resolved session state from the request
// context. Outside WithSession the zero value reads as still loading.
func GetSessionState(ctx context.Context) models.SessionState {
	state, ok := ctx.Value(SessionStateContextKey).(models.SessionState)
	if !ok {
		return models.SessionState{Phase: models.PhaseAuthLoading}
	}
	return state
}
