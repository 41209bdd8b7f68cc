package curriculum

// VocabularyEntry is one word the course teaches, tied to the lesson that
// introduces it
type VocabularyEntry struct {
	Word     string `json:"word"`
	Meaning  string `json:"meaning"`
	Example  string `json:"example"`
	LessonID string `json:"lessonId"`
}

var vocabulary = []VocabularyEntry{
	{
		Word:     "introduce",
		Meaning:  "to tell someone your name when you meet them for the first time",
		Example:  "Let me introduce myself: I am Anna.",
		LessonID: "lesson-01",
	},
	{
		Word:     "hometown",
		Meaning:  "the town or city where you grew up",
		Example:  "My hometown is a small city near the sea.",
		LessonID: "lesson-01",
	},
	{
		Word:     "order",
		Meaning:  "to ask for food or drink in a cafe or restaurant",
		Example:  "Are you ready to order, or do you need a minute?",
		LessonID: "lesson-02",
	},
	{
		Word:     "bill",
		Meaning:  "the piece of paper showing how much you must pay",
		Example:  "Could we have the bill, please?",
		LessonID: "lesson-02",
	},
	{
		Word:     "directions",
		Meaning:  "instructions that tell you how to get to a place",
		Example:  "She gave me directions to the museum.",
		LessonID: "lesson-03",
	},
	{
		Word:     "crossroads",
		Meaning:  "a place where two roads meet and cross each other",
		Example:  "Turn left at the crossroads and the station is on your right.",
		LessonID: "lesson-03",
	},
	{
		Word:     "forecast",
		Meaning:  "a statement about what the weather will be like",
		Example:  "The forecast says it will rain tomorrow.",
		LessonID: "lesson-04",
	},
	{
		Word:     "chilly",
		Meaning:  "cold, but not very cold",
		Example:  "Take a jacket, it gets chilly in the evening.",
		LessonID: "lesson-04",
	},
	{
		Word:     "fitting room",
		Meaning:  "the small room in a shop where you try on clothes",
		Example:  "The fitting rooms are at the back of the store.",
		LessonID: "lesson-05",
	},
	{
		Word:     "receipt",
		Meaning:  "the piece of paper that proves you paid for something",
		Example:  "Keep the receipt in case you want to return the shirt.",
		LessonID: "lesson-05",
	},
	{
		Word:     "invitation",
		Meaning:  "a request to come to an event or join an activity",
		Example:  "Thanks for the invitation, I would love to come.",
		LessonID: "lesson-06",
	},
	{
		Word:     "look forward to",
		Meaning:  "to feel happy about something that is going to happen",
		Example:  "I look forward to seeing you on Saturday.",
		LessonID: "lesson-06",
	},
}

// Vocabulary returns every entry in lesson order
func Vocabulary() []VocabularyEntry {
	return vocabulary
}

// VocabularyForLesson returns the entries introduced by one lesson
func VocabularyForLesson(lessonID string) []VocabularyEntry {
	var entries []VocabularyEntry
	for _, e := range vocabulary {
		if e.LessonID == lessonID {
			entries = append(entries, e)
		}
	}
	return entries
}
