package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Sign-in providers recorded on a session
const (
	ProviderAnonymous = "anonymous"
	ProviderToken     = "token"
	ProviderGoogle    = "google"
)

// Session represents an authenticated browser session bound to a learner
// identity
type Session struct {
	ID        string
	Identity  string
	Provider  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionPhase describes where a browser session is in the sign-in
// lifecycle. The zero value is PhaseAuthLoading so an unresolved state
// never reads as signed out.
type SessionPhase int

const (
	PhaseAuthLoading SessionPhase = iota
	PhaseLoggedOut
	PhaseNeedsProfile
	PhaseReady
)

// String returns the wire name of the phase
func (p SessionPhase) String() string {
	switch p {
	case PhaseAuthLoading:
		return "authLoading"
	case PhaseLoggedOut:
		return "loggedOut"
	case PhaseNeedsProfile:
		return "needsProfile"
	case PhaseReady:
		return "ready"
	default:
		return fmt.Sprintf("SessionPhase(%d)", int(p))
	}
}

// MarshalJSON encodes the phase as its wire name
func (p SessionPhase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a phase from its wire name
func (p *SessionPhase) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	switch name {
	case "authLoading":
		*p = PhaseAuthLoading
	case "loggedOut":
		*p = PhaseLoggedOut
	case "needsProfile":
		*p = PhaseNeedsProfile
	case "ready":
		*p = PhaseReady
	default:
		return fmt.Errorf("unknown session phase %q", name)
	}
	return nil
}

// SessionState is what the page shell renders from. Identity is set in
// every phase past LoggedOut; Profile only once the learner is Ready.
type SessionState struct {
	Phase    SessionPhase `json:"phase"`
	Identity string       `json:"identity,omitempty"`
	Profile  *UserProfile `json:"profile,omitempty"`
}
