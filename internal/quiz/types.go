// Package quiz implements the quiz lifecycle: prompt construction,
// lenient parsing of LLM output, deduplication against per-topic
// history, topic-scoped caching, session answer keys, and grading.
package quiz

// Question is one multiple-choice question as served to clients.
// Answer is always the verbatim text of one of Options.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// SubmittedAnswer is one (question, answer) pair from a client.
type SubmittedAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// GradeResult is the outcome of grading one submitted answer.
// Explanation is empty when the answer is correct.
type GradeResult struct {
	Question      string `json:"question"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Explanation   string `json:"explanation"`
}
