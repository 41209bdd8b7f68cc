// Package feedback produces short coaching feedback on a learner's spoken
// answer using a hosted generative model. Feedback is a nice-to-have:
// callers treat every error here as a soft failure and keep the drill
// result without feedback.
package feedback

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is returned when the feedback service cannot be
	// reached or refuses the request
	ErrUnavailable = errors.New("feedback service unavailable")

	// ErrEmptyResponse is returned when the service answers without any
	// usable text
	ErrEmptyResponse = errors.New("feedback service returned no text")
)

// Request carries the lesson context and what the learner said
type Request struct {
	LessonTitle string
	Prompt      string
	Transcript  string
}

// Provider generates feedback text for one speaking attempt
type Provider interface {
	Feedback(ctx context.Context, req Request) (string, error)
}
