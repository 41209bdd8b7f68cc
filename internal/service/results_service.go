package service

import (
	"context"
	"fmt"
	"time"

	"lingodrill/internal/docstore"
	"lingodrill/internal/models"
)

// ResultsService appends exercise results. Results are write-once
// telemetry; the app never reads them back, they exist for the operator
// and for the backup tool.
type ResultsService struct {
	store docstore.Store
}

// NewResultsService creates a new results service
func NewResultsService(store docstore.Store) *ResultsService {
	return &ResultsService{store: store}
}

// AppendSpeakingResult stores one speaking-practice outcome under a fresh
// document ID
func (s *ResultsService) AppendSpeakingResult(ctx context.Context, identity string, result models.SpeakingResult) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	if _, err := s.store.Add(ctx, identity, models.CollectionSpeakingResults, result); err != nil {
		return fmt.Errorf("failed to append speaking result: %w", err)
	}
	return nil
}

// AppendDictationResult stores one dictation-drill outcome under a fresh
// document ID
func (s *ResultsService) AppendDictationResult(ctx context.Context, identity string, result models.DictationResult) error {
	if result.Timestamp.IsZero() {
		result.Timestamp = time.Now()
	}
	if _, err := s.store.Add(ctx, identity, models.CollectionDictationResults, result); err != nil {
		return fmt.Errorf("failed to append dictation result: %w", err)
	}
	return nil
}
