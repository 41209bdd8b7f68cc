package models

import (
	"strings"
	"time"
)

// Document collections and fixed document IDs in the document store
const (
	CollectionProfile          = "profile"
	CollectionProgress         = "progress"
	CollectionSpeakingResults  = "speakingResults"
	CollectionDictationResults = "dictationResults"

	// DocMain is the document ID for singleton documents like the
	// profile and progress records
	DocMain = "main"
)

// UserProfile is the learner's profile document, stored at profile/main
type UserProfile struct {
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	LastLogin   time.Time `json:"lastLogin"`
}

// IsComplete reports whether the profile carries enough to enter the app.
// A profile without a display name sends the learner to setup first.
func (p *UserProfile) IsComplete() bool {
	return strings.TrimSpace(p.DisplayName) != ""
}

// ProgressRecord is the learner's progress document, stored at progress/main
type ProgressRecord struct {
	LastCompletedLessonID string    `json:"lastCompletedLessonId"`
	DisplayName           string    `json:"displayName,omitempty"`
	CompletedAt           time.Time `json:"completedAt"`
}

// SpeakingResult records one speaking drill attempt
type SpeakingResult struct {
	Timestamp       time.Time `json:"timestamp"`
	DisplayName     string    `json:"displayName,omitempty"`
	LessonID        string    `json:"lessonId"`
	TranscribedText string    `json:"transcribedText"`
	Feedback        string    `json:"feedback,omitempty"`
}

// DictationResult records one dictation drill attempt
type DictationResult struct {
	Timestamp   time.Time `json:"timestamp"`
	DisplayName string    `json:"displayName,omitempty"`
	LessonID    string    `json:"lessonId"`
	Sentence    string    `json:"sentence"`
	UserAnswer  string    `json:"userAnswer"`
	IsCorrect   bool      `json:"isCorrect"`
}
