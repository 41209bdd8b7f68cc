package curriculum

import (
	"testing"
)

func TestLessonsAreWellFormed(t *testing.T) {
	all := Lessons()
	if len(all) == 0 {
		t.Fatal("no lessons defined")
	}

	seen := make(map[string]bool)
	for _, l := range all {
		if l.ID == "" {
			t.Error("lesson with empty ID")
		}
		if seen[l.ID] {
			t.Errorf("duplicate lesson ID %s", l.ID)
		}
		seen[l.ID] = true

		if l.Title == "" {
			t.Errorf("lesson %s has no title", l.ID)
		}
		if l.SpeakingPrompt == "" {
			t.Errorf("lesson %s has no speaking prompt", l.ID)
		}
		if l.DictationSentence == "" {
			t.Errorf("lesson %s has no dictation sentence", l.ID)
		}
		if l.Transcript == "" {
			t.Errorf("lesson %s has no canned transcript", l.ID)
		}
	}
}

func TestLessonByID(t *testing.T) {
	first := Lessons()[0]

	lesson, ok := LessonByID(first.ID)
	if !ok {
		t.Fatalf("LessonByID(%s) not found", first.ID)
	}
	if lesson.Title != first.Title {
		t.Errorf("LessonByID returned %s, want %s", lesson.Title, first.Title)
	}

	if _, ok := LessonByID("lesson-99"); ok {
		t.Error("LessonByID found a lesson that does not exist")
	}
}

func TestDeriveProgress(t *testing.T) {
	all := Lessons()
	final := all[len(all)-1]

	tests := []struct {
		name           string
		lastCompleted  string
		wantNext       int
		wantRecognized bool
	}{
		{
			name:           "fresh learner starts at the first lesson",
			lastCompleted:  "",
			wantNext:       0,
			wantRecognized: true,
		},
		{
			name:           "first lesson done moves to the second",
			lastCompleted:  all[0].ID,
			wantNext:       1,
			wantRecognized: true,
		},
		{
			name:           "middle of the course",
			lastCompleted:  all[2].ID,
			wantNext:       3,
			wantRecognized: true,
		},
		{
			name:           "final lesson done means the whole course is complete",
			lastCompleted:  final.ID,
			wantNext:       len(all),
			wantRecognized: true,
		},
		{
			name:           "unknown lesson falls back to the start",
			lastCompleted:  "lesson-99",
			wantNext:       0,
			wantRecognized: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, completed, recognized := DeriveProgress(tt.lastCompleted)
			if next != tt.wantNext {
				t.Errorf("DeriveProgress(%q) next = %d, want %d", tt.lastCompleted, next, tt.wantNext)
			}
			if recognized != tt.wantRecognized {
				t.Errorf("DeriveProgress(%q) recognized = %v, want %v", tt.lastCompleted, recognized, tt.wantRecognized)
			}
			if len(completed) != len(all) {
				t.Fatalf("DeriveProgress(%q) returned %d flags, want %d", tt.lastCompleted, len(completed), len(all))
			}
			for i, done := range completed {
				if want := i < tt.wantNext; done != want {
					t.Errorf("DeriveProgress(%q) completed[%d] = %v, want %v", tt.lastCompleted, i, done, want)
				}
			}
		})
	}
}

func TestIsFinalLesson(t *testing.T) {
	all := Lessons()
	final := all[len(all)-1]

	if !IsFinalLesson(final.ID) {
		t.Errorf("IsFinalLesson(%s) = false, want true", final.ID)
	}
	if IsFinalLesson(all[0].ID) {
		t.Errorf("IsFinalLesson(%s) = true, want false", all[0].ID)
	}
	if IsFinalLesson("lesson-99") {
		t.Error("IsFinalLesson of unknown ID = true, want false")
	}
}

func TestVocabularyReferencesKnownLessons(t *testing.T) {
	entries := Vocabulary()
	if len(entries) == 0 {
		t.Fatal("no vocabulary defined")
	}

	for _, e := range entries {
		if e.Word == "" || e.Meaning == "" || e.Example == "" {
			t.Errorf("incomplete vocabulary entry %+v", e)
		}
		if _, ok := LessonByID(e.LessonID); !ok {
			t.Errorf("vocabulary word %q references unknown lesson %s", e.Word, e.LessonID)
		}
	}
}

func TestVocabularyForLesson(t *testing.T) {
	first := Lessons()[0]

	entries := VocabularyForLesson(first.ID)
	if len(entries) == 0 {
		t.Fatalf("no vocabulary for %s", first.ID)
	}
	for _, e := range entries {
		if e.LessonID != first.ID {
			t.Errorf("entry %q belongs to %s, want %s", e.Word, e.LessonID, first.ID)
		}
	}

	if got := VocabularyForLesson("lesson-99"); len(got) != 0 {
		t.Errorf("vocabulary for unknown lesson = %d entries, want 0", len(got))
	}
}
