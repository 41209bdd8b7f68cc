package service

import "strings"

// answerPunctuation lists the characters ignored when a typed answer is
// compared against the reference sentence.
const answerPunctuation = `.,!?;:"'`

// NormalizeAnswer lowercases an answer, removes sentence punctuation and
// trims surrounding whitespace. Interior whitespace is kept exactly as
// typed, so a doubled space still counts as a mismatch.
func NormalizeAnswer(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(answerPunctuation, r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// AnswersMatch reports whether a typed answer matches the reference
// sentence once both are normalized. There is no partial credit.
func AnswersMatch(reference, candidate string) bool {
	return NormalizeAnswer(reference) == NormalizeAnswer(candidate)
}
