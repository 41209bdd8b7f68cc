package service

import (
	"context"
	"errors"
	"testing"

	"lingodrill/internal/curriculum"
	"lingodrill/internal/docstore"
	"lingodrill/internal/models"
)

func TestCheckAnswer(t *testing.T) {
	lesson := curriculum.Lessons()[0]

	tests := []struct {
		name        string
		answer      string
		wantCorrect bool
	}{
		{
			name:        "exact answer",
			answer:      lesson.DictationSentence,
			wantCorrect: true,
		},
		{
			name:        "case and punctuation ignored",
			answer:      NormalizeAnswer(lesson.DictationSentence),
			wantCorrect: true,
		},
		{
			name:        "wrong answer",
			answer:      "Something else entirely.",
			wantCorrect: false,
		},
		{
			name:        "empty answer",
			answer:      "",
			wantCorrect: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := docstore.NewMemoryStore()
			svc := NewDictationService(NewResultsService(store))
			ctx := context.Background()

			outcome, err := svc.CheckAnswer(ctx, "anon-1", "Jane Doe", lesson.ID, tt.answer)
			if err != nil {
				t.Fatalf("CheckAnswer failed: %v", err)
			}
			if outcome.Correct != tt.wantCorrect {
				t.Errorf("Correct = %v, want %v", outcome.Correct, tt.wantCorrect)
			}
			if outcome.Sentence != lesson.DictationSentence {
				t.Errorf("Sentence = %q, want the reference sentence", outcome.Sentence)
			}

			docs, err := store.List(ctx, "anon-1", models.CollectionDictationResults, 10)
			if err != nil {
				t.Fatalf("listing dictation results: %v", err)
			}
			if len(docs) != 1 {
				t.Fatalf("stored %d dictation results, want 1", len(docs))
			}
			var result models.DictationResult
			if err := docs[0].Decode(&result); err != nil {
				t.Fatalf("decoding dictation result: %v", err)
			}
			if result.IsCorrect != tt.wantCorrect || result.UserAnswer != tt.answer {
				t.Errorf("stored result = %+v, want answer %q correct %v", result, tt.answer, tt.wantCorrect)
			}
		})
	}
}

func TestCheckAnswerUnknownLesson(t *testing.T) {
	svc := NewDictationService(NewResultsService(docstore.NewMemoryStore()))

	_, err := svc.CheckAnswer(context.Background(), "anon-1", "", "lesson-99", "anything")
	if !errors.Is(err, ErrUnknownLesson) {
		t.Errorf("CheckAnswer(unknown lesson) error = %v, want ErrUnknownLesson", err)
	}
}
