package retrieval

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shruti/nursebot/internal/llm"
)

func TestSuggest_ParsesThree(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`Here you go: ["What are the side effects?", "How often to monitor?", "When to escalate?"]`),
	})
	s := NewSuggester(mock)

	got := s.Suggest(context.Background(), "Tell me about insulin")
	if len(got) != SuggestionCount {
		t.Fatalf("expected %d suggestions, got %d", SuggestionCount, len(got))
	}
	if got[0] != "What are the side effects?" {
		t.Errorf("unexpected first suggestion: %q", got[0])
	}
}

func TestSuggest_ProviderErrorFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	s := NewSuggester(mock)

	got := s.Suggest(context.Background(), "Anything")
	if len(got) != SuggestionCount {
		t.Fatalf("expected %d fallback suggestions, got %d", SuggestionCount, len(got))
	}
	if got[0] != fallbackSuggestions[0] {
		t.Errorf("expected fixed fallback, got %q", got[0])
	}
}

func TestSuggest_UnparseableFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`I would suggest asking about monitoring.`),
	})
	s := NewSuggester(mock)

	got := s.Suggest(context.Background(), "Anything")
	if len(got) != SuggestionCount {
		t.Fatalf("expected %d suggestions, got %d", SuggestionCount, len(got))
	}
	if got[0] != parseFallbackSuggestions[0] {
		t.Errorf("expected parse fallback, got %q", got[0])
	}
}

func TestSuggest_ShortListToppedUp(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`["Only one question?"]`),
	})
	s := NewSuggester(mock)

	got := s.Suggest(context.Background(), "Anything")
	if len(got) != SuggestionCount {
		t.Fatalf("expected %d suggestions, got %d", SuggestionCount, len(got))
	}
	if got[0] != "Only one question?" {
		t.Errorf("model suggestion should come first, got %q", got[0])
	}
	if got[1] != fallbackSuggestions[0] {
		t.Errorf("expected fallback top-up, got %q", got[1])
	}
}

func TestSuggest_ExtraEntriesTruncated(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`["One?", "Two?", "Three?", "Four?", "Five?"]`),
	})
	s := NewSuggester(mock)

	got := s.Suggest(context.Background(), "Anything")
	if len(got) != SuggestionCount {
		t.Fatalf("expected %d suggestions, got %d", SuggestionCount, len(got))
	}
	if got[2] != "Three?" {
		t.Errorf("expected first three kept, got %v", got)
	}
}
