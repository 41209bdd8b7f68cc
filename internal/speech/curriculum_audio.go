package speech

import (
	"log"

	"lingodrill/internal/curriculum"
)

// DictationClipName is the filename stem for a lesson's dictation sentence
func DictationClipName(lessonID string) string {
	return "dictation_" + lessonID
}

// WordClipName is the filename stem for a vocabulary word's pronunciation
func WordClipName(word string) string {
	return "word_" + word
}

// ClipFileName is the on-disk filename GenerateClip produces for a stem.
// Pages use it to build audio URLs without generating anything.
func ClipFileName(stem string) string {
	return sanitizeStem(stem) + ".mp3"
}

// EnsureCurriculumAudio generates any missing clips for dictation
// sentences and vocabulary words. Individual fetch failures are logged
// and skipped; the page plays whatever audio exists.
func EnsureCurriculumAudio(s *Synthesizer) {
	for _, lesson := range curriculum.Lessons() {
		if _, err := s.GenerateClip(lesson.DictationSentence, DictationClipName(lesson.ID)); err != nil {
			log.Printf("Warning: dictation audio for %s: %v", lesson.ID, err)
		}
	}

	for _, entry := range curriculum.Vocabulary() {
		if _, err := s.GenerateClip(entry.Word, WordClipName(entry.Word)); err != nil {
			log.Printf("Warning: pronunciation audio for %q: %v", entry.Word, err)
		}
	}
}

// CleanupOrphanedClips removes MP3 files that no longer correspond to any
// dictation sentence or vocabulary word, and reports how many went away
func CleanupOrphanedClips(s *Synthesizer) (int, error) {
	expected := make(map[string]bool)
	for _, lesson := range curriculum.Lessons() {
		expected[ClipFileName(DictationClipName(lesson.ID))] = true
	}
	for _, entry := range curriculum.Vocabulary() {
		expected[ClipFileName(WordClipName(entry.Word))] = true
	}

	clips, err := s.ListClips()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, clip := range clips {
		if expected[clip] {
			continue
		}
		if err := s.DeleteClip(clip); err != nil {
			log.Printf("Warning: failed to remove orphaned clip %s: %v", clip, err)
			continue
		}
		removed++
	}

	return removed, nil
}
