package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/shruti/nursebot/internal/llm"
)

// GenerationError reports that a quiz request produced no servable
// questions. Carries a client-facing reason.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string { return e.Reason }

func (e *GenerationError) Unwrap() error { return e.Err }

// GenerateRequest describes one quiz request.
type GenerateRequest struct {
	// Count is how many questions to return. Responses are truncated,
	// never padded, to this count.
	Count int

	// Topic scopes the quiz, its cache entry, and its history. Empty
	// means GeneralTopic.
	Topic string

	// Prompt, when set, bypasses the prompt builder entirely.
	Prompt string

	// SessionID is the caller-supplied session token. Empty means a
	// fresh one is generated.
	SessionID string
}

// Quiz is a served quiz plus the session id its answer key lives under.
type Quiz struct {
	Questions []Question
	SessionID string
}

// Config controls the generation pipeline.
type Config struct {
	TTL         time.Duration // cache lifetime, default 300s
	MaxTokens   int           // LLM response budget, default 2000
	Temperature float64       // default 0.7
	Parser      Parser
}

// DefaultConfig returns the deployed defaults.
func DefaultConfig() Config {
	return Config{
		TTL:         DefaultTTL,
		MaxTokens:   2000,
		Temperature: 0.7,
	}
}

// Generator runs the quiz pipeline: cache check, prompt build, LLM
// call, lenient parse, dedup against history, one bounded retry on low
// unique yield, then persistence into history, cache, and sessions.
type Generator struct {
	provider llm.Provider
	history  *History
	cache    *Cache
	sessions *Sessions
	cfg      Config
	logger   *zap.Logger

	// flight collapses concurrent cache misses for the same (topic,
	// count) into a single LLM generation.
	flight singleflight.Group
}

// NewGenerator wires the pipeline.
func NewGenerator(provider llm.Provider, history *History, cache *Cache, sessions *Sessions, cfg Config, logger *zap.Logger) *Generator {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		provider: provider,
		history:  history,
		cache:    cache,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Generate serves a quiz for the request, from cache when fresh. The
// answer key is stored under the resolved session id in every success
// path, cache hits included.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*Quiz, error) {
	topic := req.Topic
	if topic == "" {
		topic = GeneralTopic
	}

	if cached, ok := g.cache.Get(topic, req.Count); ok {
		id := g.sessions.Put(req.SessionID, cached)
		g.logger.Debug("quiz served from cache",
			zap.String("topic", topic), zap.Int("count", len(cached)))
		return &Quiz{Questions: cached, SessionID: id}, nil
	}

	v, err, _ := g.flight.Do(cacheKey(topic, req.Count), func() (any, error) {
		// A concurrent flight may have filled the cache already.
		if cached, ok := g.cache.Get(topic, req.Count); ok {
			return cached, nil
		}
		return g.generate(ctx, topic, req.Count, req.Prompt)
	})
	if err != nil {
		return nil, err
	}

	questions := v.([]Question)
	id := g.sessions.Put(req.SessionID, questions)
	return &Quiz{Questions: questions, SessionID: id}, nil
}

// generate runs one full miss path and persists the result.
func (g *Generator) generate(ctx context.Context, topic string, count int, promptOverride string) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	prompt := promptOverride
	if prompt == "" {
		prompt = BuildPrompt(topic, count, g.history)
	}

	var unique []Question
	seen := make(map[string]bool)
	accept := func(batch []Question) {
		for _, q := range batch {
			if len(unique) >= count {
				return
			}
			key := Key(q.Question)
			if seen[key] || !g.history.IsUnique(q.Question, topic) {
				g.logger.Debug("filtered duplicate question", zap.String("question", q.Question))
				continue
			}
			seen[key] = true
			unique = append(unique, q)
		}
	}

	batch, err := g.generateBatch(ctx, prompt)
	var parseErr *ParseError
	switch {
	case err == nil:
		accept(batch)
	case errors.As(err, &parseErr):
		// A parse failure counts as zero yield and burns no budget
		// beyond the single retry below.
		g.logger.Warn("quiz parse failed, retrying once", zap.Error(err))
	default:
		return nil, err
	}

	// One bounded retry when the unique yield is below half the ask.
	if len(unique) < (count+1)/2 {
		retryBatch, retryErr := g.generateBatch(ctx, prompt+retrySuffix(count))
		if retryErr != nil {
			if len(unique) == 0 {
				return nil, &GenerationError{
					Reason: "No valid quiz questions were generated. Please check the LLM provider connection.",
					Err:    retryErr,
				}
			}
			g.logger.Warn("quiz retry failed, serving partial result", zap.Error(retryErr))
		} else {
			accept(retryBatch)
		}
	}

	if len(unique) > count {
		unique = unique[:count]
	}
	if len(unique) == 0 {
		return nil, &GenerationError{
			Reason: "Unable to generate unique quiz questions. Please try a different topic.",
		}
	}

	g.history.Record(unique, topic)
	g.cache.Put(topic, count, unique, g.cfg.TTL)

	g.logger.Info("quiz generated",
		zap.String("topic", topic),
		zap.Int("requested", count),
		zap.Int("served", len(unique)))
	return unique, nil
}

// generateBatch performs one LLM call and parses its output.
func (g *Generator) generateBatch(ctx context.Context, prompt string) ([]Question, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      quizSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, err
	}
	return g.cfg.Parser.Parse(resp.Text())
}

func retrySuffix(count int) string {
	return fmt.Sprintf(retrySuffixFmt, count)
}
