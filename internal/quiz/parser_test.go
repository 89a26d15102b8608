package quiz

import (
	"errors"
	"testing"
)

func TestParse_ProseWrappedArray(t *testing.T) {
	raw := `Here are your questions: [{"question": "Q1?", "option1": "A", "option2": "B", "option3": "C", "option4": "D", "answer": "b"}] Good luck!`

	questions, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	q := questions[0]
	if q.Question != "Q1?" {
		t.Errorf("unexpected question text: %q", q.Question)
	}
	if len(q.Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(q.Options))
	}
	if q.Options[0] != "A" || q.Options[3] != "D" {
		t.Errorf("unexpected options: %v", q.Options)
	}
	// "b" matches option "B" under case-insensitive comparison and the
	// answer is served as the option's verbatim text.
	if q.Answer != "B" {
		t.Errorf("expected answer B, got %q", q.Answer)
	}
}

func TestParse_EscapedJSON(t *testing.T) {
	raw := `The quiz:\n[{\"question\": \"What is first?\", \"option1\": \"Assess\", \"option2\": \"Document\", \"option3\": \"Notify\", \"option4\": \"Wait\", \"answer\": \"Assess\"}]`

	questions, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Answer != "Assess" {
		t.Errorf("expected answer Assess, got %q", questions[0].Answer)
	}
}

func TestParse_NoArray(t *testing.T) {
	_, err := Parse("I cannot generate questions right now.")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParse_EmptyQuestionDropped(t *testing.T) {
	raw := `[{"question": "  ", "option1": "A", "option2": "B", "option3": "C", "option4": "D", "answer": "A"},
		{"question": "Kept?", "option1": "A", "option2": "B", "option3": "C", "option4": "D", "answer": "A"}]`

	questions, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Question != "Kept?" {
		t.Errorf("unexpected surviving question: %q", questions[0].Question)
	}
}

func TestParse_UnmatchedAnswerFallsBackToFirstOption(t *testing.T) {
	raw := `[{"question": "Q?", "option1": "Alpha", "option2": "Beta", "option3": "Gamma", "option4": "Delta", "answer": "Epsilon"}]`

	questions, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Answer != "Alpha" {
		t.Errorf("expected fallback answer Alpha, got %q", questions[0].Answer)
	}
}

func TestParse_StrictModeDropsUnmatchedAnswer(t *testing.T) {
	raw := `[{"question": "Q?", "option1": "Alpha", "option2": "Beta", "option3": "Gamma", "option4": "Delta", "answer": "Epsilon"}]`

	questions, err := Parser{RejectUnmatched: true}.Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected 0 questions in strict mode, got %d", len(questions))
	}
}

func TestParse_MissingOptionsOmitted(t *testing.T) {
	raw := `[{"question": "Q?", "option1": "A", "option2": "B", "answer": "B"}]`

	questions, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions[0].Options) != 2 {
		t.Errorf("expected 2 options, got %d", len(questions[0].Options))
	}
	if questions[0].Answer != "B" {
		t.Errorf("expected answer B, got %q", questions[0].Answer)
	}
}
