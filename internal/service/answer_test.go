package service

import "testing"

func TestNormalizeAnswer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercase and strip punctuation",
			input:    "Hello, world!",
			expected: "hello world",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "  good morning  ",
			expected: "good morning",
		},
		{
			name:     "apostrophes and quotes removed",
			input:    `It's "fine"`,
			expected: "its fine",
		},
		{
			name:     "interior whitespace untouched",
			input:    "a  b",
			expected: "a  b",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeAnswer(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeAnswer(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		candidate string
		expected  bool
	}{
		{
			name:      "punctuation and case ignored",
			reference: "Hello, world!",
			candidate: "hello world",
			expected:  true,
		},
		{
			name:      "exact match",
			reference: "I would like a cup of coffee.",
			candidate: "I would like a cup of coffee.",
			expected:  true,
		},
		{
			name:      "interior double space is a mismatch",
			reference: "a  b",
			candidate: "a b",
			expected:  false,
		},
		{
			name:      "different words",
			reference: "It was sunny this morning.",
			candidate: "It was rainy this morning.",
			expected:  false,
		},
		{
			name:      "missing word",
			reference: "Do you have this jacket in a smaller size?",
			candidate: "Do you have this jacket in smaller size?",
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := AnswersMatch(tt.reference, tt.candidate)
			if result != tt.expected {
				t.Errorf("AnswersMatch(%q, %q) = %v, want %v", tt.reference, tt.candidate, result, tt.expected)
			}
		})
	}
}
