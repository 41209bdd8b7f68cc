package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"lingodrill/internal/credentials"
	"lingodrill/internal/docstore"
	"lingodrill/internal/models"
	"lingodrill/internal/validation"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already exists")
)

// ProfileService manages the single profile document each identity owns
type ProfileService struct {
	store docstore.Store
}

// NewProfileService creates a new profile service
func NewProfileService(store docstore.Store) *ProfileService {
	return &ProfileService{store: store}
}

// GetProfile loads the profile document for an identity
func (s *ProfileService) GetProfile(ctx context.Context, identity string) (*models.UserProfile, error) {
	doc, err := s.store.Get(ctx, identity, models.CollectionProfile, models.DocMain)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile models.UserProfile
	if err := doc.Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &profile, nil
}

// CreateProfile validates and stores a new profile. Identities that
// already completed setup get ErrProfileExists; profiles are never
// overwritten or deleted once complete.
func (s *ProfileService) CreateProfile(ctx context.Context, identity, displayName, email string) (*models.UserProfile, error) {
	displayName = strings.TrimSpace(displayName)
	email = strings.TrimSpace(email)

	if err := validation.ValidateDisplayName(displayName); err != nil {
		return nil, err
	}
	if err := validation.ValidateOptionalEmail(email); err != nil {
		return nil, err
	}

	existing, err := s.GetProfile(ctx, identity)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}
	if existing != nil && existing.IsComplete() {
		return nil, ErrProfileExists
	}

	now := time.Now()
	profile := &models.UserProfile{
		DisplayName: displayName,
		Email:       email,
		CreatedAt:   now,
		LastLogin:   now,
	}
	if err := s.store.Set(ctx, identity, models.CollectionProfile, models.DocMain, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	return profile, nil
}

// SuggestedNames returns display-name suggestions for the setup page.
// An empty slice means suggestions are unavailable, which the page
// tolerates.
func (s *ProfileService) SuggestedNames(n int) []string {
	names, err := credentials.SuggestDisplayNames(n)
	if err != nil {
		log.Printf("Warning: failed to generate name suggestions: %v", err)
		return nil
	}
	return names
}
