package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shruti/nursebot/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event in the request log.
type LoggingProvider struct {
	inner  Provider
	events store.EventLog
	logger *zap.Logger
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, events store.EventLog, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, events: events, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMEvent{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		if cost := LookupCost(resp.Model); cost != nil {
			ev.CostUSD = cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens)
		}
	}

	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.events.AppendLLMEvent(ctx, ev); logErr != nil {
		l.logger.Warn("failed to record LLM request event", zap.Error(logErr))
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
