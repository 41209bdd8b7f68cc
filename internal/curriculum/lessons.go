// Package curriculum holds the fixed lesson sequence and vocabulary the
// app teaches. Lessons are ordered; a learner's position is derived from
// the ID of the last lesson they completed.
package curriculum

// Lesson is one unit in the course
type Lesson struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	SpeakingPrompt string `json:"speakingPrompt"`

	// DictationSentence is the expected answer for the dictation drill.
	// It stays out of JSON; the client only hears it as audio and sees
	// the text after an attempt.
	DictationSentence string `json:"-"`

	// Transcript is the canned recognizer output for the speaking drill.
	// Real speech-to-text is out of scope, so each lesson ships a fixed
	// plausible transcription.
	Transcript string `json:"-"`
}

var lessons = []Lesson{
	{
		ID:                "lesson-01",
		Title:             "Greetings and Introductions",
		Description:       "Say hello, introduce yourself and ask simple questions about others.",
		SpeakingPrompt:    "Introduce yourself. Say your name, where you are from and one thing you enjoy.",
		DictationSentence: "Hello, my name is Anna and I am from Spain.",
		Transcript:        "Hello my name is Maria, I am from Brazil and I enjoy reading books.",
	},
	{
		ID:                "lesson-02",
		Title:             "Ordering at a Cafe",
		Description:       "Order food and drinks politely and handle simple questions from staff.",
		SpeakingPrompt:    "You are at a cafe. Order a drink and something to eat, and ask how much it costs.",
		DictationSentence: "I would like a cup of coffee and a slice of cake, please.",
		Transcript:        "I would like a large orange juice and a cheese sandwich please, how much is that.",
	},
	{
		ID:                "lesson-03",
		Title:             "Asking for Directions",
		Description:       "Ask where places are and understand short spoken directions.",
		SpeakingPrompt:    "Ask a stranger how to get to the train station, and thank them for the help.",
		DictationSentence: "Excuse me, how do I get to the train station from here?",
		Transcript:        "Excuse me, can you tell me how to get to the train station, thank you very much.",
	},
	{
		ID:                "lesson-04",
		Title:             "Talking About the Weather",
		Description:       "Describe today's weather and compare it with yesterday's.",
		SpeakingPrompt:    "Describe the weather today and say what it was like yesterday.",
		DictationSentence: "It was sunny this morning, but now it looks like rain.",
		Transcript:        "Today it is cloudy and a little cold, yesterday it was sunny and warm.",
	},
	{
		ID:                "lesson-05",
		Title:             "Shopping for Clothes",
		Description:       "Ask about sizes, colours and prices while shopping.",
		SpeakingPrompt:    "You are buying a jacket. Ask about the size, the colour and the price.",
		DictationSentence: "Do you have this jacket in a smaller size?",
		Transcript:        "Do you have this jacket in blue, and is there a medium size, how much does it cost.",
	},
	{
		ID:                "lesson-06",
		Title:             "Making Weekend Plans",
		Description:       "Talk about future plans and invite someone to join you.",
		SpeakingPrompt:    "Tell a friend about your plans for the weekend and invite them to come along.",
		DictationSentence: "We are going to visit the museum on Saturday afternoon.",
		Transcript:        "This weekend I am going to visit the museum with my sister, would you like to come.",
	},
}

// byID is built once at startup for constant-time lesson lookup
var byID = func() map[string]int {
	m := make(map[string]int, len(lessons))
	for i, l := range lessons {
		m[l.ID] = i
	}
	return m
}()

// Lessons returns the ordered lesson list
func Lessons() []Lesson {
	return lessons
}

// LessonByID returns the lesson with the given ID
func LessonByID(id string) (Lesson, bool) {
	i, ok := byID[id]
	if !ok {
		return Lesson{}, false
	}
	return lessons[i], true
}

// IsFinalLesson reports whether id names the last lesson of the course
func IsFinalLesson(id string) bool {
	return len(lessons) > 0 && id == lessons[len(lessons)-1].ID
}

// DeriveProgress maps the ID of the last completed lesson to the index of
// the lesson the learner should work on next, plus a per-lesson completion
// flag slice. An empty ID means a fresh learner at the first lesson.
// Completing the final lesson yields next == len(Lessons()), the
// all-complete state; callers must render a completion message for it
// rather than indexing the lesson list. The recognized result reports
// whether the ID was found; unrecognized IDs fall back to the first lesson
// so callers can log the bad record instead of failing the page.
func DeriveProgress(lastCompletedID string) (next int, completed []bool, recognized bool) {
	recognized = lastCompletedID == ""
	if i, ok := byID[lastCompletedID]; ok {
		next = i + 1
		recognized = true
	}
	completed = make([]bool, len(lessons))
	for i := range completed {
		completed[i] = i < next
	}
	return next, completed, recognized
}
