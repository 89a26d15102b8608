package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shruti/nursebot/internal/llm"
)

// SuggestionCount is the fixed number of follow-up questions returned.
const SuggestionCount = 3

// SuggestionsSchema constrains the LLM output to a 3-string array.
var SuggestionsSchema = &llm.Schema{
	Name:        "follow-up-suggestions",
	Description: "Exactly three short follow-up questions a nursing student might ask",
	Definition: map[string]any{
		"type":     "array",
		"items":    map[string]any{"type": "string"},
		"minItems": SuggestionCount,
		"maxItems": SuggestionCount,
	},
}

// fallbackSuggestions is served when the LLM call fails outright.
var fallbackSuggestions = []string{
	"Can you explain more about this topic?",
	"What are the key nursing considerations?",
	"When should I seek medical help?",
}

// parseFallbackSuggestions is served when a response arrives but no
// usable JSON array can be extracted from it.
var parseFallbackSuggestions = []string{
	"What are the nursing interventions for this?",
	"How do I monitor the patient's condition?",
	"What patient education should I provide?",
}

// Suggester produces follow-up questions for an asked question.
type Suggester struct {
	provider llm.Provider
}

// NewSuggester creates a Suggester using the given provider.
func NewSuggester(provider llm.Provider) *Suggester {
	return &Suggester{provider: provider}
}

// Suggest returns exactly three follow-up questions. Every failure mode
// degrades to a fixed list; this path never returns an error.
func (s *Suggester) Suggest(ctx context.Context, question string) []string {
	ctx = llm.WithPurpose(ctx, "suggest")

	prompt := fmt.Sprintf(
		"Based on this nursing question: '%s'\n\n"+
			"Generate exactly 3 short, relevant follow-up questions that a nursing student might ask. "+
			"Return ONLY a JSON array of strings in this exact format:\n"+
			"[\"Question 1?\", \"Question 2?\", \"Question 3?\"]\n\n"+
			"Focus on practical nursing care, safety considerations, or patient education related to the topic. "+
			"Keep each question under 15 words.",
		question)

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      answerSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return fallbackSuggestions
	}

	suggestions, ok := extractSuggestions(resp.Text())
	if !ok {
		return parseFallbackSuggestions
	}
	return suggestions
}

// extractSuggestions pulls the first bracketed JSON array out of raw
// text, validates it against SuggestionsSchema-compatible shape, and
// cleans it to exactly SuggestionCount entries.
func extractSuggestions(raw string) ([]string, bool) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, false
	}
	span := json.RawMessage(raw[start : end+1])

	var items []string
	if err := json.Unmarshal(span, &items); err != nil {
		return nil, false
	}

	cleaned := make([]string, 0, SuggestionCount)
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		cleaned = append(cleaned, item)
		if len(cleaned) == SuggestionCount {
			break
		}
	}
	if len(cleaned) == 0 {
		return nil, false
	}

	// Top up short lists so callers always receive three entries.
	for i := 0; len(cleaned) < SuggestionCount; i++ {
		cleaned = append(cleaned, fallbackSuggestions[i%len(fallbackSuggestions)])
	}

	if err := llm.ValidateJSON(SuggestionsSchema, mustJSON(cleaned)); err != nil {
		return nil, false
	}
	return cleaned, true
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
