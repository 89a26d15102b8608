// Package retrieval grounds free-form questions in the knowledge index
// and delegates generation to the LLM provider.
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/shruti/nursebot/internal/embedding"
	"github.com/shruti/nursebot/internal/llm"
)

// TopK is how many chunks form the answer context.
const TopK = 5

const answerSystemPrompt = "You are a helpful medical assistant."

// Answerer answers questions from the knowledge text.
type Answerer struct {
	index    *embedding.Index
	provider llm.Provider
}

// NewAnswerer creates an Answerer over the given index and provider.
func NewAnswerer(index *embedding.Index, provider llm.Provider) *Answerer {
	return &Answerer{index: index, provider: provider}
}

// Answer retrieves the top-5 chunks for the question, joins them into a
// context block in score order, and asks the LLM for a short grounded
// answer. Provider failures propagate: there is no fallback answer.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	ctx = llm.WithPurpose(ctx, "ask")

	hits, err := a.index.Query(ctx, question, TopK)
	if err != nil {
		return "", fmt.Errorf("retrieve context: %w", err)
	}

	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = a.index.Chunk(h.ChunkIndex)
	}

	prompt := fmt.Sprintf(
		"You are a concise and helpful nursing assistant. "+
			"Based only on the context below, give a brief answer in 1-2 sentences. Avoid long explanations.\n\n"+
			"Context:\n%s\n\nQuestion:\n%s",
		strings.Join(texts, "\n"), question)

	resp, err := a.provider.Generate(ctx, llm.Request{
		System:      answerSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}
