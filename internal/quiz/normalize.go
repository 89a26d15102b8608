package quiz

import (
	"regexp"
	"strings"
)

// Text equality in the quiz pipeline never uses raw string comparison:
// LLM output and client round-trips drift in casing, punctuation, and
// whitespace. Three normal forms cover every comparison site:
//
//   Key         option matching and history dedup
//   AnswerKey   submitted vs stored answers (list markers stripped)
//   QuestionKey submitted vs stored question texts (whitespace folded)

var (
	nonWordRE    = regexp.MustCompile(`\W+`)
	listMarkerRE = regexp.MustCompile(`^\s*[a-dA-D][.):]\s*`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Key reduces text to lowercase word characters only. "B." and "b"
// collapse to the same key, as do rephrasings that differ solely in
// punctuation or spacing.
func Key(s string) string {
	return strings.ToLower(nonWordRE.ReplaceAllString(s, ""))
}

// AnswerKey normalizes a quiz answer for grading: a leading
// single-letter list marker such as "a." or "C)" is dropped, then the
// remainder is compared under Key rules.
func AnswerKey(s string) string {
	return Key(listMarkerRE.ReplaceAllString(s, ""))
}

// QuestionKey normalizes a question text for lookup: trimmed,
// lowercased, with internal whitespace runs (including newlines)
// collapsed to single spaces. Unlike Key it keeps punctuation, so
// distinct questions that differ only in wording stay distinct.
func QuestionKey(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(strings.ToLower(s), " "))
}
