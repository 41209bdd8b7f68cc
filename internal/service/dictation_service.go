package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"lingodrill/internal/curriculum"
	"lingodrill/internal/models"
)

// DictationOutcome is what the dictation panel renders after an answer
// check. The reference sentence always comes back with the verdict so
// the learner can compare.
type DictationOutcome struct {
	LessonID string `json:"lessonId"`
	Correct  bool   `json:"correct"`
	Sentence string `json:"sentence"`
}

// DictationService checks typed answers against each lesson's dictation
// sentence and appends the outcome
type DictationService struct {
	results *ResultsService
}

// NewDictationService creates a new dictation service
func NewDictationService(results *ResultsService) *DictationService {
	return &DictationService{results: results}
}

// CheckAnswer scores one typed answer. A failed result append is logged
// and dropped; the learner still gets their verdict.
func (s *DictationService) CheckAnswer(ctx context.Context, identity, displayName, lessonID, answer string) (*DictationOutcome, error) {
	lesson, ok := curriculum.LessonByID(lessonID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLesson, lessonID)
	}

	outcome := &DictationOutcome{
		LessonID: lesson.ID,
		Correct:  AnswersMatch(lesson.DictationSentence, answer),
		Sentence: lesson.DictationSentence,
	}

	result := models.DictationResult{
		Timestamp:   time.Now(),
		DisplayName: displayName,
		LessonID:    lesson.ID,
		Sentence:    lesson.DictationSentence,
		UserAnswer:  answer,
		IsCorrect:   outcome.Correct,
	}
	if err := s.results.AppendDictationResult(ctx, identity, result); err != nil {
		log.Printf("Warning: failed to save dictation result for %s: %v", identity, err)
	}

	return outcome, nil
}
