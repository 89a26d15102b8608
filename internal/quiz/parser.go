package quiz

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports that no usable question list could be extracted
// from the model's output.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("quiz parse failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("quiz parse failed: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// arrayOfObjectsRE finds the first bracketed span that looks like a
// JSON array of objects. A permissive scan, not a full JSON-anywhere
// search: models wrap the array in prose, they don't nest it.
var arrayOfObjectsRE = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)

// optionKeys is the fixed field order the prompt demands from the model.
var optionKeys = [4]string{"option1", "option2", "option3", "option4"}

// Parser turns raw LLM text into questions.
type Parser struct {
	// RejectUnmatched drops questions whose stated answer matches none
	// of the options. When false (the deployed default), such questions
	// fall back to the first option, which masks a bad generation as
	// valid data but never serves an answer outside the option set.
	RejectUnmatched bool
}

// Parse extracts the first JSON array of question objects from raw LLM
// text with the default lenient policy.
func Parse(raw string) ([]Question, error) {
	return Parser{}.Parse(raw)
}

// Parse extracts and normalizes questions from raw LLM text.
func (p Parser) Parse(raw string) ([]Question, error) {
	cleaned := unescape(raw)

	span := arrayOfObjectsRE.FindString(cleaned)
	if span == "" {
		return nil, &ParseError{Reason: "no JSON array of questions found"}
	}

	var items []map[string]any
	if err := json.Unmarshal([]byte(span), &items); err != nil {
		return nil, &ParseError{Reason: "malformed JSON array", Err: err}
	}

	questions := make([]Question, 0, len(items))
	for _, item := range items {
		q := convertItem(item, p.RejectUnmatched)
		if q != nil {
			questions = append(questions, *q)
		}
	}
	return questions, nil
}

// convertItem builds one Question from a raw object. Returns nil when
// the question must be dropped (no text, or strict mode with an
// unmatched answer).
func convertItem(item map[string]any, rejectUnmatched bool) *Question {
	text := strings.TrimSpace(stringField(item, "question"))
	if text == "" {
		return nil
	}

	var options []string
	for _, k := range optionKeys {
		if _, ok := item[k]; ok {
			options = append(options, stringField(item, k))
		}
	}

	answer := strings.TrimSpace(stringField(item, "answer"))
	matched := ""
	for _, opt := range options {
		if Key(opt) == Key(answer) {
			matched = opt
			break
		}
	}

	if matched == "" {
		if rejectUnmatched {
			return nil
		}
		// Lenient fallback: serve the first option rather than an
		// answer no client could ever submit.
		if len(options) > 0 {
			matched = options[0]
		}
	}

	return &Question{
		Question: text,
		Options:  options,
		Answer:   matched,
	}
}

func stringField(item map[string]any, key string) string {
	if v, ok := item[key].(string); ok {
		return v
	}
	return ""
}

// unescape flattens LLM output that arrives with escaped JSON inside
// prose: literal escape sequences are resolved, then newlines and any
// leftover backslashes are stripped so the array scan sees one line.
func unescape(raw string) string {
	s := strings.NewReplacer(
		`\n`, "",
		`\r`, "",
		`\t`, " ",
		`\"`, `"`,
	).Replace(raw)
	s = strings.NewReplacer("\n", "", "\r", "", `\`, "").Replace(s)
	return s
}
