package handlers

import (
	"lingodrill/internal/curriculum"
	"lingodrill/internal/models"
	"lingodrill/internal/service"
	"lingodrill/internal/speech"
)

// LoginViewData is the data for the login page
type LoginViewData struct {
	Title         string
	Error         string
	TokenEnabled  bool
	GoogleEnabled bool
}

// SetupViewData is the data for the profile setup page
type SetupViewData struct {
	Title       string
	Error       string
	DisplayName string
	Email       string
	Suggestions []string
	CSRFToken   string
}

// HomeViewData is the data for the practice page
type HomeViewData struct {
	Title         string
	Profile       *models.UserProfile
	Snapshot      *service.ProgressSnapshot
	Lessons       []LessonView
	CurrentLesson *LessonView
	Vocabulary    []VocabularyView
}

// LessonView is a lesson as the page and the JSON APIs see it. The
// dictation sentence stays server side so a learner cannot read the
// answer out of the page source.
type LessonView struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	SpeakingPrompt string `json:"speakingPrompt"`
	DictationAudio string `json:"dictationAudio"`
	Completed      bool   `json:"completed"`
	Current        bool   `json:"current"`
}

// VocabularyView is a vocabulary entry with its audio clip URL
type VocabularyView struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Example  string `json:"example"`
	LessonID string `json:"lessonId"`
	Audio    string `json:"audio"`
}

// buildLessonViews flattens a progress snapshot into per-lesson rows
func buildLessonViews(snapshot *service.ProgressSnapshot) []LessonView {
	views := make([]LessonView, len(snapshot.Lessons))
	for i, lesson := range snapshot.Lessons {
		views[i] = LessonView{
			ID:             lesson.ID,
			Title:          lesson.Title,
			Description:    lesson.Description,
			SpeakingPrompt: lesson.SpeakingPrompt,
			DictationAudio: audioURL(speech.DictationClipName(lesson.ID)),
			Completed:      snapshot.Completed[i],
			Current:        !snapshot.AllComplete && i == snapshot.NextIndex,
		}
	}
	return views
}

// buildVocabularyViews pairs every vocabulary entry with its clip URL
func buildVocabularyViews() []VocabularyView {
	entries := curriculum.Vocabulary()
	views := make([]VocabularyView, len(entries))
	for i, entry := range entries {
		views[i] = VocabularyView{
			Word:     entry.Word,
			Meaning:  entry.Meaning,
			Example:  entry.Example,
			LessonID: entry.LessonID,
			Audio:    audioURL(speech.WordClipName(entry.Word)),
		}
	}
	return views
}

// audioURL maps a clip stem to its path under /static
func audioURL(stem string) string {
	return "/static/audio/" + speech.ClipFileName(stem)
}

// displayName pulls the profile name off a session state, empty until
// the profile exists
func displayName(state models.SessionState) string {
	if state.Profile == nil {
		return ""
	}
	return state.Profile.DisplayName
}
