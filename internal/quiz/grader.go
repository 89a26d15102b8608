package quiz

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/shruti/nursebot/internal/llm"
)

const (
	sessionNotFoundExplanation = "Quiz session not found on server. Please try reloading the quiz."
	noAnswerExplanation        = "Correct answer not available for this question."
	explanationUnavailable     = "Explanation unavailable."
	unknownAnswer              = "N/A"
)

// Grader matches submitted answers against a session's stored answer
// key. Wrong answers get a short LLM explanation; every failure along
// the way degrades per item, never aborting the batch.
type Grader struct {
	provider llm.Provider
	sessions *Sessions
	logger   *zap.Logger
}

// NewGrader creates a Grader over the session store and provider.
func NewGrader(provider llm.Provider, sessions *Sessions, logger *zap.Logger) *Grader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grader{provider: provider, sessions: sessions, logger: logger}
}

// Evaluate grades each submitted response in order, one result per
// response. An unknown session grades everything incorrect rather than
// failing the request.
func (g *Grader) Evaluate(ctx context.Context, sessionID string, responses []SubmittedAnswer) []GradeResult {
	results := make([]GradeResult, 0, len(responses))

	stored, ok := g.sessions.Get(sessionID)
	if !ok {
		g.logger.Warn("evaluation for unknown session", zap.String("session_id", sessionID))
		for _, r := range responses {
			results = append(results, GradeResult{
				Question:      r.Question,
				Correct:       false,
				CorrectAnswer: unknownAnswer,
				Explanation:   sessionNotFoundExplanation,
			})
		}
		return results
	}

	for _, r := range responses {
		results = append(results, g.gradeOne(ctx, stored, r))
	}
	return results
}

func (g *Grader) gradeOne(ctx context.Context, stored []Question, r SubmittedAnswer) GradeResult {
	correctAnswer, found := matchQuestion(stored, r.Question)
	if !found {
		return GradeResult{
			Question:      r.Question,
			Correct:       false,
			CorrectAnswer: unknownAnswer,
			Explanation:   noAnswerExplanation,
		}
	}

	correct := AnswerKey(r.Answer) == AnswerKey(correctAnswer)

	explanation := ""
	if !correct {
		explanation = g.explain(ctx, r, correctAnswer)
	}

	return GradeResult{
		Question:      r.Question,
		Correct:       correct,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
	}
}

// matchQuestion finds the stored correct answer for a submitted
// question using whitespace-normalized equality, tolerating
// transport-layer drift in newlines and spacing.
func matchQuestion(stored []Question, submitted string) (string, bool) {
	key := QuestionKey(submitted)
	for _, q := range stored {
		if QuestionKey(q.Question) == key {
			return q.Answer, true
		}
	}
	return "", false
}

// explain asks the LLM for a short explanation of the correct choice,
// truncated to two sentences. LLM failure yields a placeholder.
func (g *Grader) explain(ctx context.Context, r SubmittedAnswer, correctAnswer string) string {
	ctx = llm.WithPurpose(ctx, "grade-explain")

	prompt := fmt.Sprintf(
		"The user answered the following nursing quiz question incorrectly:\n\n"+
			"Question: %s\n"+
			"User's Answer: %s\n"+
			"Correct Answer: %s\n\n"+
			"Briefly explain the correct choice in 1-2 sentences only.",
		r.Question, r.Answer, correctAnswer)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   2000,
		Temperature: 0.7,
	})
	if err != nil {
		g.logger.Warn("explanation request failed", zap.Error(err))
		return explanationUnavailable
	}

	return truncateSentences(resp.Text(), 2)
}

// truncateSentences keeps the first n sentence-delimited clauses,
// re-terminating with a period.
func truncateSentences(text string, n int) string {
	parts := strings.SplitN(text, ". ", n+1)
	if len(parts) > n {
		parts = parts[:n]
	}
	out := strings.TrimSpace(strings.Join(parts, ". "))
	out = strings.TrimSuffix(out, ".")
	if out == "" {
		return ""
	}
	return out + "."
}
