package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lingodrill/internal/docstore"
	"lingodrill/internal/models"
	"lingodrill/internal/repository"
	"lingodrill/internal/security"
)

var (
	// ErrSignInFailed is the one error sign-in surfaces to the learner.
	// The detail behind it stays in the wrapped cause.
	ErrSignInFailed    = errors.New("could not sign you in")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// AuthService handles sign-in, session resolution and sign-out
type AuthService struct {
	sessions        *repository.SessionRepository
	store           docstore.Store
	verifier        *security.TokenVerifier
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service. verifier may be nil when
// custom-token sign-in is not configured.
func NewAuthService(sessions *repository.SessionRepository, store docstore.Store, verifier *security.TokenVerifier, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		sessions:        sessions,
		store:           store,
		verifier:        verifier,
		sessionDuration: sessionDuration,
	}
}

// TokenSignInEnabled reports whether a token secret was configured
func (s *AuthService) TokenSignInEnabled() bool {
	return s.verifier != nil
}

// SignInAnonymous mints a fresh anonymous identity and opens a session
// for it. Every anonymous sign-in is a new learner.
func (s *AuthService) SignInAnonymous() (*models.Session, error) {
	identity := security.GenerateAnonymousIdentity()
	return s.createSession(identity, models.ProviderAnonymous)
}

// SignInWithToken verifies a custom sign-in token and opens a session for
// the identity carried in its uid claim
func (s *AuthService) SignInWithToken(ctx context.Context, token string) (*models.Session, error) {
	if s.verifier == nil {
		return nil, fmt.Errorf("%w: token sign-in not configured", ErrSignInFailed)
	}

	uid, err := s.verifier.VerifyToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}

	session, err := s.createSession(uid, models.ProviderToken)
	if err != nil {
		return nil, err
	}
	s.touchLastLogin(ctx, uid)

	return session, nil
}

// SignInWithGoogle opens a session for a verified Google account. The
// first sign-in bootstraps a profile from the account details so the
// learner can skip the setup page.
func (s *AuthService) SignInWithGoogle(ctx context.Context, subject, email, name string) (*models.Session, error) {
	if subject == "" {
		return nil, fmt.Errorf("%w: missing google subject", ErrSignInFailed)
	}
	identity := models.ProviderGoogle + ":" + subject

	session, err := s.createSession(identity, models.ProviderGoogle)
	if err != nil {
		return nil, err
	}

	_, err = s.store.Get(ctx, identity, models.CollectionProfile, models.DocMain)
	switch {
	case errors.Is(err, docstore.ErrNotFound):
		if name == "" && email != "" {
			name = strings.Split(email, "@")[0]
		}
		if name == "" {
			break // nothing to bootstrap from, setup page will ask
		}
		now := time.Now()
		profile := models.UserProfile{
			DisplayName: name,
			Email:       email,
			CreatedAt:   now,
			LastLogin:   now,
		}
		if err := s.store.Set(ctx, identity, models.CollectionProfile, models.DocMain, profile); err != nil {
			log.Printf("Warning: failed to bootstrap profile for %s: %v", identity, err)
		}
	case err == nil:
		s.touchLastLogin(ctx, identity)
	}

	return session, nil
}

// ResolveSession maps a session ID to the state the page shell renders.
// Missing, unknown and expired sessions all resolve to LoggedOut; the
// error is non-nil only when storage fails, and even then the returned
// state is renderable.
func (s *AuthService) ResolveSession(ctx context.Context, sessionID string) (models.SessionState, error) {
	loggedOut := models.SessionState{Phase: models.PhaseLoggedOut}
	if sessionID == "" {
		return loggedOut, nil
	}

	session, err := s.sessions.GetSession(sessionID)
	if err != nil {
		return loggedOut, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return loggedOut, nil
	}
	if session.IsExpired() {
		_ = s.sessions.DeleteSession(sessionID)
		return loggedOut, nil
	}

	doc, err := s.store.Get(ctx, session.Identity, models.CollectionProfile, models.DocMain)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.SessionState{Phase: models.PhaseNeedsProfile, Identity: session.Identity}, nil
	}
	if err != nil {
		return loggedOut, fmt.Errorf("failed to load profile: %w", err)
	}

	var profile models.UserProfile
	if err := doc.Decode(&profile); err != nil {
		return loggedOut, fmt.Errorf("failed to decode profile: %w", err)
	}
	if !profile.IsComplete() {
		return models.SessionState{Phase: models.PhaseNeedsProfile, Identity: session.Identity}, nil
	}

	return models.SessionState{
		Phase:    models.PhaseReady,
		Identity: session.Identity,
		Profile:  &profile,
	}, nil
}

// SignOut deletes the server session
func (s *AuthService) SignOut(sessionID string) error {
	if err := s.sessions.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database and
// reports how many were deleted
func (s *AuthService) CleanupExpiredSessions() (int64, error) {
	n, err := s.sessions.DeleteExpiredSessions()
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return n, nil
}

func (s *AuthService) createSession(identity, provider string) (*models.Session, error) {
	sessionID := security.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.sessions.CreateSession(sessionID, identity, provider, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// touchLastLogin merge-writes the profile's lastLogin field. Best effort;
// a failed update never blocks sign-in. Identities without a profile are
// skipped so setup still starts from a clean document.
func (s *AuthService) touchLastLogin(ctx context.Context, identity string) {
	_, err := s.store.Get(ctx, identity, models.CollectionProfile, models.DocMain)
	if errors.Is(err, docstore.ErrNotFound) {
		return
	}
	if err != nil {
		log.Printf("Warning: failed to check profile for %s: %v", identity, err)
		return
	}

	err = s.store.Merge(ctx, identity, models.CollectionProfile, models.DocMain, map[string]interface{}{
		"lastLogin": time.Now(),
	})
	if err != nil {
		log.Printf("Warning: failed to update last login for %s: %v", identity, err)
	}
}
