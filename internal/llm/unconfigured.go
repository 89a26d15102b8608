package llm

import (
	"context"

	"go.uber.org/zap"

	"github.com/shruti/nursebot/internal/store"
)

// errProvider defers a construction-time failure to call time. Every
// Generate returns the original error.
type errProvider struct {
	err error
}

func (p *errProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	return nil, p.err
}

func (p *errProvider) ModelID() string { return "unconfigured" }

// NewProviderLazy builds a Provider like NewProvider, but never fails:
// missing credentials produce a provider whose calls return the
// configuration error. This lets the HTTP server start without API keys
// and report the problem per request instead of refusing to boot.
func NewProviderLazy(ctx context.Context, cfg Config, events store.EventLog, logger *zap.Logger) Provider {
	p, err := NewProvider(ctx, cfg, events, logger)
	if err != nil {
		logger.Warn("LLM provider unavailable, requests will fail until configured", zap.Error(err))
		return &errProvider{err: err}
	}
	return p
}
