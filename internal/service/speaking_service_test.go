package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lingodrill/internal/curriculum"
	"lingodrill/internal/docstore"
	"lingodrill/internal/feedback"
	"lingodrill/internal/models"
	"lingodrill/internal/speech"
)

func newSpeakingTestService(t *testing.T, provider feedback.Provider) (*SpeakingService, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	recordings := speech.NewRecordingStore(t.TempDir())
	return NewSpeakingService(recordings, provider, NewResultsService(store)), store
}

func TestSubmitRecording(t *testing.T) {
	mock := feedback.NewMockProvider(feedback.MockResponse{Text: "Great pronunciation! Try to slow down a little."})
	svc, store := newSpeakingTestService(t, mock)
	ctx := context.Background()

	lesson := curriculum.Lessons()[0]
	outcome, err := svc.SubmitRecording(ctx, "anon-1", "Jane Doe", lesson.ID, strings.NewReader("voice-bytes"), "audio/webm")
	if err != nil {
		t.Fatalf("SubmitRecording failed: %v", err)
	}

	if outcome.Transcript != lesson.Transcript {
		t.Errorf("Transcript = %q, want the lesson's canned transcript", outcome.Transcript)
	}
	if outcome.Feedback != "Great pronunciation! Try to slow down a little." {
		t.Errorf("Feedback = %q, want the provider's text", outcome.Feedback)
	}
	if outcome.FeedbackUnavailable {
		t.Error("FeedbackUnavailable = true on a successful call")
	}
	if outcome.RecordingFile == "" {
		t.Error("RecordingFile is empty")
	}

	// The provider must have been asked about this lesson's prompt
	if mock.CallCount() != 1 {
		t.Fatalf("provider called %d times, want 1", mock.CallCount())
	}
	if mock.Calls[0].Prompt != lesson.SpeakingPrompt {
		t.Errorf("provider prompt = %q, want %q", mock.Calls[0].Prompt, lesson.SpeakingPrompt)
	}

	// A speaking result must have been appended
	docs, err := store.List(ctx, "anon-1", models.CollectionSpeakingResults, 10)
	if err != nil {
		t.Fatalf("listing speaking results: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("stored %d speaking results, want 1", len(docs))
	}
	var result models.SpeakingResult
	if err := docs[0].Decode(&result); err != nil {
		t.Fatalf("decoding speaking result: %v", err)
	}
	if result.LessonID != lesson.ID || result.TranscribedText != lesson.Transcript {
		t.Errorf("stored result = %+v, want lesson %s with its transcript", result, lesson.ID)
	}
	if result.Feedback == "" {
		t.Error("stored result has no feedback text")
	}
}

func TestSubmitRecordingFeedbackFailureIsSoft(t *testing.T) {
	mock := feedback.NewMockProvider(feedback.MockResponse{Err: feedback.ErrUnavailable})
	svc, store := newSpeakingTestService(t, mock)
	ctx := context.Background()

	lesson := curriculum.Lessons()[0]
	outcome, err := svc.SubmitRecording(ctx, "anon-1", "", lesson.ID, strings.NewReader("voice-bytes"), "audio/webm")
	if err != nil {
		t.Fatalf("SubmitRecording failed on a feedback error: %v", err)
	}

	if !outcome.FeedbackUnavailable {
		t.Error("FeedbackUnavailable = false after a provider error")
	}
	if outcome.Feedback != FeedbackUnavailableMessage {
		t.Errorf("Feedback = %q, want the fallback message", outcome.Feedback)
	}

	// The result is still appended, without the fallback text
	docs, err := store.List(ctx, "anon-1", models.CollectionSpeakingResults, 10)
	if err != nil {
		t.Fatalf("listing speaking results: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("stored %d speaking results, want 1", len(docs))
	}
	var result models.SpeakingResult
	if err := docs[0].Decode(&result); err != nil {
		t.Fatalf("decoding speaking result: %v", err)
	}
	if result.Feedback != "" {
		t.Errorf("stored result feedback = %q, want empty after a provider error", result.Feedback)
	}
}

func TestSubmitRecordingUnknownLesson(t *testing.T) {
	svc, _ := newSpeakingTestService(t, feedback.NewMockProvider())

	_, err := svc.SubmitRecording(context.Background(), "anon-1", "", "lesson-99", strings.NewReader("x"), "audio/webm")
	if !errors.Is(err, ErrUnknownLesson) {
		t.Errorf("SubmitRecording(unknown lesson) error = %v, want ErrUnknownLesson", err)
	}
}
