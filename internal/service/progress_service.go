package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"lingodrill/internal/curriculum"
	"lingodrill/internal/docstore"
	"lingodrill/internal/models"
)

var ErrUnknownLesson = errors.New("unknown lesson")

// ProgressSnapshot is the view of the learner's position rendered by the
// progress strip and returned by the progress endpoints. NextIndex equal
// to len(Lessons) means the whole course is done.
type ProgressSnapshot struct {
	Lessons               []curriculum.Lesson `json:"lessons"`
	Completed             []bool              `json:"completed"`
	NextIndex             int                 `json:"nextIndex"`
	AllComplete           bool                `json:"allComplete"`
	LastCompletedLessonID string              `json:"lastCompletedLessonId"`
}

// ProgressService derives lesson progress from the single progress
// document each identity owns
type ProgressService struct {
	store docstore.Store
	email *EmailService
}

// NewProgressService creates a new progress service. email may be nil.
func NewProgressService(store docstore.Store, email *EmailService) *ProgressService {
	return &ProgressService{store: store, email: email}
}

// Snapshot loads the progress record and derives the renderable view. An
// identity without a progress document is a fresh learner.
func (s *ProgressService) Snapshot(ctx context.Context, identity string) (*ProgressSnapshot, error) {
	var record models.ProgressRecord

	doc, err := s.store.Get(ctx, identity, models.CollectionProgress, models.DocMain)
	if err != nil && !errors.Is(err, docstore.ErrNotFound) {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	if err == nil {
		if err := doc.Decode(&record); err != nil {
			return nil, fmt.Errorf("failed to decode progress: %w", err)
		}
	}

	return s.snapshotFromRecord(identity, &record), nil
}

// SnapshotFromDocument converts a watched progress document into the
// renderable view
func (s *ProgressService) SnapshotFromDocument(identity string, doc *docstore.Document) (*ProgressSnapshot, error) {
	var record models.ProgressRecord
	if err := doc.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return s.snapshotFromRecord(identity, &record), nil
}

func (s *ProgressService) snapshotFromRecord(identity string, record *models.ProgressRecord) *ProgressSnapshot {
	next, completed, recognized := curriculum.DeriveProgress(record.LastCompletedLessonID)
	if !recognized {
		log.Printf("Warning: progress for %s references unknown lesson %q, falling back to the first lesson",
			identity, record.LastCompletedLessonID)
	}

	return &ProgressSnapshot{
		Lessons:               curriculum.Lessons(),
		Completed:             completed,
		NextIndex:             next,
		AllComplete:           next >= len(curriculum.Lessons()),
		LastCompletedLessonID: record.LastCompletedLessonID,
	}
}

// MarkLessonComplete records a finished lesson and returns the updated
// view. This is the one write the learner directly observes, so failures
// are returned rather than logged. The record keeps only the last
// completed lesson; completing an earlier lesson again moves the learner
// back, matching the single-record model.
func (s *ProgressService) MarkLessonComplete(ctx context.Context, identity, lessonID, displayName string) (*ProgressSnapshot, error) {
	lesson, ok := curriculum.LessonByID(lessonID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLesson, lessonID)
	}

	fields := map[string]interface{}{
		"lastCompletedLessonId": lesson.ID,
		"completedAt":           time.Now(),
	}
	if displayName != "" {
		fields["displayName"] = displayName
	}
	if err := s.store.Merge(ctx, identity, models.CollectionProgress, models.DocMain, fields); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}

	if curriculum.IsFinalLesson(lesson.ID) {
		s.sendCongratulations(identity, displayName)
	}

	return s.snapshotFromRecord(identity, &models.ProgressRecord{LastCompletedLessonID: lesson.ID}), nil
}

// Watch opens a live subscription to the identity's progress document.
// The caller owns the subscription and must close it.
func (s *ProgressService) Watch(ctx context.Context, identity string) (*docstore.Subscription, error) {
	return s.store.Watch(ctx, identity, models.CollectionProgress, models.DocMain)
}

// sendCongratulations mails the learner once the whole course is done.
// Single attempt in the background; delivery problems never affect the
// completion write.
func (s *ProgressService) sendCongratulations(identity, displayName string) {
	if s.email == nil || !s.email.IsEnabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		doc, err := s.store.Get(ctx, identity, models.CollectionProfile, models.DocMain)
		if err != nil {
			log.Printf("Warning: could not load profile for completion email: %v", err)
			return
		}
		var profile models.UserProfile
		if err := doc.Decode(&profile); err != nil || profile.Email == "" {
			return
		}

		name := profile.DisplayName
		if displayName != "" {
			name = displayName
		}
		if err := s.email.SendCourseCompleteEmail(ctx, profile.Email, name); err != nil {
			log.Printf("Warning: failed to send completion email to %s: %v", profile.Email, err)
		}
	}()
}
