package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"lingodrill/internal/curriculum"
	"lingodrill/internal/feedback"
	"lingodrill/internal/models"
	"lingodrill/internal/speech"
)

// FeedbackUnavailableMessage is shown when the remote feedback call
// fails. Feedback is a soft feature; the drill still completes without it.
const FeedbackUnavailableMessage = "Feedback is not available right now. Keep practicing and try again later."

// SpeakingOutcome is what the speaking panel renders after a submission
type SpeakingOutcome struct {
	LessonID   string `json:"lessonId"`
	Transcript string `json:"transcript"`
	Feedback   string `json:"feedback"`

	// FeedbackUnavailable marks outcomes whose Feedback text is the
	// canned fallback rather than a real response.
	FeedbackUnavailable bool `json:"feedbackUnavailable"`

	RecordingFile string `json:"-"`
}

// SpeakingService runs the speaking drill: store the recording, produce
// the transcription, fetch feedback and append the result
type SpeakingService struct {
	recordings *speech.RecordingStore
	provider   feedback.Provider
	results    *ResultsService
}

// NewSpeakingService creates a new speaking service
func NewSpeakingService(recordings *speech.RecordingStore, provider feedback.Provider, results *ResultsService) *SpeakingService {
	return &SpeakingService{
		recordings: recordings,
		provider:   provider,
		results:    results,
	}
}

// SubmitRecording handles one speaking submission. A failed upload aborts
// the drill; a failed feedback call is soft and the outcome carries a
// fallback message instead; a failed result append is logged and dropped.
func (s *SpeakingService) SubmitRecording(ctx context.Context, identity, displayName, lessonID string, audio io.Reader, contentType string) (*SpeakingOutcome, error) {
	lesson, ok := curriculum.LessonByID(lessonID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLesson, lessonID)
	}

	filename, err := s.recordings.Save(identity, audio, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to save recording: %w", err)
	}

	// Real speech-to-text is out of scope; the transcription is the
	// lesson's canned transcript regardless of what was recorded.
	outcome := &SpeakingOutcome{
		LessonID:      lesson.ID,
		Transcript:    lesson.Transcript,
		RecordingFile: filename,
	}

	text, err := s.provider.Feedback(ctx, feedback.Request{
		LessonTitle: lesson.Title,
		Prompt:      lesson.SpeakingPrompt,
		Transcript:  outcome.Transcript,
	})
	if err != nil {
		log.Printf("Warning: feedback unavailable for %s on %s: %v", identity, lesson.ID, err)
		outcome.Feedback = FeedbackUnavailableMessage
		outcome.FeedbackUnavailable = true
	} else {
		outcome.Feedback = text
	}

	result := models.SpeakingResult{
		Timestamp:       time.Now(),
		DisplayName:     displayName,
		LessonID:        lesson.ID,
		TranscribedText: outcome.Transcript,
	}
	if !outcome.FeedbackUnavailable {
		result.Feedback = outcome.Feedback
	}
	if err := s.results.AppendSpeakingResult(ctx, identity, result); err != nil {
		log.Printf("Warning: failed to save speaking result for %s: %v", identity, err)
	}

	return outcome, nil
}
