package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/shruti/nursebot/internal/llm"
)

// quizJSON builds a canned LLM response containing n distinct questions
// starting at the given ordinal.
func quizJSON(start, n int) json.RawMessage {
	items := make([]string, 0, n)
	for i := start; i < start+n; i++ {
		items = append(items, fmt.Sprintf(
			`{"question": "Question %d?", "option1": "A%d", "option2": "B%d", "option3": "C%d", "option4": "D%d", "answer": "A%d"}`,
			i, i, i, i, i, i))
	}
	return json.RawMessage("[" + strings.Join(items, ",") + "]")
}

func newTestGenerator(mock *llm.MockProvider) (*Generator, *History, *Cache, *Sessions) {
	history := NewHistory(DefaultHistoryLimit)
	cache := NewCache()
	sessions := NewSessions()
	gen := NewGenerator(mock, history, cache, sessions, DefaultConfig(), nil)
	return gen, history, cache, sessions
}

func TestGenerate_SingleCallOnFullYield(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(0, 5)})
	gen, history, cache, _ := newTestGenerator(mock)

	quiz, err := gen.Generate(context.Background(), GenerateRequest{Count: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(quiz.Questions))
	}
	if quiz.SessionID == "" {
		t.Error("expected a generated session id")
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected 1 LLM call, got %d", mock.CallCount())
	}
	if history.Len(GeneralTopic) != 5 {
		t.Errorf("expected 5 recorded questions, got %d", history.Len(GeneralTopic))
	}
	if _, ok := cache.Get(GeneralTopic, 5); !ok {
		t.Error("expected generated quiz to be cached")
	}
}

func TestGenerate_RetriesOnLowYield(t *testing.T) {
	// First batch yields 2 of 10, below the ceil(10/2) threshold.
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: quizJSON(0, 2)},
		llm.MockResponse{Content: quizJSON(2, 8)},
	)
	gen, _, _, _ := newTestGenerator(mock)

	quiz, err := gen.Generate(context.Background(), GenerateRequest{Count: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(quiz.Questions))
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 LLM calls, got %d", mock.CallCount())
	}

	retryPrompt := mock.LastCall().Messages[0].Content
	if !strings.Contains(retryPrompt, "COMPLETELY UNIQUE") {
		t.Error("retry prompt should carry the uniqueness suffix")
	}
}

func TestGenerate_TruncatesOverdelivery(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(0, 8)})
	gen, _, _, _ := newTestGenerator(mock)

	quiz, err := gen.Generate(context.Background(), GenerateRequest{Count: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(quiz.Questions))
	}
	if mock.CallCount() != 1 {
		t.Errorf("full yield should not retry, got %d calls", mock.CallCount())
	}
}

func TestGenerate_DedupWithinBatch(t *testing.T) {
	raw := json.RawMessage(`[
		{"question": "Same question?", "option1": "A", "option2": "B", "option3": "C", "option4": "D", "answer": "A"},
		{"question": "same QUESTION", "option1": "A", "option2": "B", "option3": "C", "option4": "D", "answer": "A"}
	]`)
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: raw},
		llm.MockResponse{Content: quizJSON(0, 1)},
	)
	gen, _, _, _ := newTestGenerator(mock)

	quiz, err := gen.Generate(context.Background(), GenerateRequest{Count: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, q := range quiz.Questions {
		for j := i + 1; j < len(quiz.Questions); j++ {
			if Key(q.Question) == Key(quiz.Questions[j].Question) {
				t.Errorf("duplicate questions served: %q and %q", q.Question, quiz.Questions[j].Question)
			}
		}
	}
}

func TestGenerate_HistoryDedupAcrossRequests(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: quizJSON(0, 2)},
		// Second request resends the same questions; retry brings new ones.
		llm.MockResponse{Content: quizJSON(0, 2)},
		llm.MockResponse{Content: quizJSON(10, 2)},
	)
	gen, _, cache, _ := newTestGenerator(mock)

	if _, err := gen.Generate(context.Background(), GenerateRequest{Count: 2, Topic: "Cardiac"}); err != nil {
		t.Fatalf("first generate: %v", err)
	}

	// Force a miss so the second request hits the LLM again.
	cache.Put("Cardiac", 2, nil, DefaultTTL)

	quiz, err := gen.Generate(context.Background(), GenerateRequest{Count: 2, Topic: "Cardiac"})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	for _, q := range quiz.Questions {
		if q.Question == "Question 0?" || q.Question == "Question 1?" {
			t.Errorf("previously served question resurfaced: %q", q.Question)
		}
	}
}

func TestGenerate_CacheHitSkipsLLM(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(0, 5)})
	gen, _, _, sessions := newTestGenerator(mock)

	first, err := gen.Generate(context.Background(), GenerateRequest{Count: 5})
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}

	second, err := gen.Generate(context.Background(), GenerateRequest{Count: 5, SessionID: "client-7"})
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("cache hit should not call the LLM, got %d calls", mock.CallCount())
	}
	if second.SessionID != "client-7" {
		t.Errorf("caller session id should be honored, got %q", second.SessionID)
	}
	if len(second.Questions) != len(first.Questions) {
		t.Errorf("cache hit should serve the same quiz")
	}

	// Cache hits still register an answer key for grading.
	if _, ok := sessions.Get("client-7"); !ok {
		t.Error("expected answer key stored for cache-hit session")
	}
}

func TestGenerate_ParseFailureThenRetrySucceeds(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`no questions here`)},
		llm.MockResponse{Content: quizJSON(0, 4)},
	)
	gen, _, _, _ := newTestGenerator(mock)

	quiz, err := gen.Generate(context.Background(), GenerateRequest{Count: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(quiz.Questions) != 4 {
		t.Fatalf("expected 4 questions after retry, got %d", len(quiz.Questions))
	}
	if mock.CallCount() != 2 {
		t.Errorf("expected 2 LLM calls, got %d", mock.CallCount())
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrRateLimit{},
	})
	gen, _, _, _ := newTestGenerator(mock)

	_, err := gen.Generate(context.Background(), GenerateRequest{Count: 5})
	var rateLimited *llm.ErrRateLimit
	if !errors.As(err, &rateLimited) {
		t.Fatalf("expected ErrRateLimit, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider errors should not retry, got %d calls", mock.CallCount())
	}
}

func TestGenerate_BothAttemptsFail(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`nothing`)},
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{}},
	)
	gen, _, _, _ := newTestGenerator(mock)

	_, err := gen.Generate(context.Background(), GenerateRequest{Count: 5})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !strings.Contains(genErr.Reason, "No valid quiz questions") {
		t.Errorf("unexpected reason: %q", genErr.Reason)
	}
}

func TestGenerate_AllDuplicatesFails(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: quizJSON(0, 2)},
		llm.MockResponse{Content: quizJSON(0, 2)},
		llm.MockResponse{Content: quizJSON(0, 2)},
	)
	gen, _, cache, _ := newTestGenerator(mock)

	if _, err := gen.Generate(context.Background(), GenerateRequest{Count: 2}); err != nil {
		t.Fatalf("seed generate: %v", err)
	}
	cache.Put(GeneralTopic, 2, nil, DefaultTTL)

	_, err := gen.Generate(context.Background(), GenerateRequest{Count: 2})
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if !strings.Contains(genErr.Reason, "different topic") {
		t.Errorf("unexpected reason: %q", genErr.Reason)
	}
}

func TestGenerate_PromptOverride(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(0, 2)})
	gen, _, _, _ := newTestGenerator(mock)

	_, err := gen.Generate(context.Background(), GenerateRequest{
		Count:  2,
		Prompt: "custom prompt text",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := mock.LastCall().Messages[0].Content; got != "custom prompt text" {
		t.Errorf("expected prompt override to pass through, got %q", got)
	}
}
