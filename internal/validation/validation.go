// Package validation checks user-supplied profile fields before they are
// stored.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

const (
	MinDisplayNameLength = 2
	MaxDisplayNameLength = 50
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateDisplayName checks that a display name is usable after trimming
// surrounding whitespace
func ValidateDisplayName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < MinDisplayNameLength {
		return errors.New("display name must be at least 2 characters")
	}
	if len(trimmed) > MaxDisplayNameLength {
		return errors.New("display name must be at most 50 characters")
	}
	return nil
}

// ValidateEmail checks that an email address looks deliverable
func ValidateEmail(email string) error {
	if !emailRegexp.MatchString(email) {
		return errors.New("invalid email address")
	}
	return nil
}

// ValidateOptionalEmail accepts an empty email and otherwise defers to
// ValidateEmail. Profile emails are optional.
func ValidateOptionalEmail(email string) error {
	if email == "" {
		return nil
	}
	return ValidateEmail(email)
}
