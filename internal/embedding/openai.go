package embedding

import (
	"context"
	"fmt"
	"math"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// openaiBatchSize caps how many inputs go into one embeddings request.
const openaiBatchSize = 256

// Config holds embedding provider configuration.
type Config struct {
	APIKey  string
	Model   string // Default: "text-embedding-3-small"
	BaseURL string // Optional override for OpenAI-compatible APIs.
}

// ConfigFromEnv builds a Config from environment variables.
func ConfigFromEnv() Config {
	cfg := Config{Model: "text-embedding-3-small"}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.APIKey = k
	}
	if m := os.Getenv("NURSEBOT_EMBEDDING_MODEL"); m != "" {
		cfg.Model = m
	}
	if u := os.Getenv("NURSEBOT_EMBEDDING_BASE_URL"); u != "" {
		cfg.BaseURL = u
	}
	return cfg
}

// OpenAIEmbedder implements Embedder using the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an embedder from config.
func NewOpenAIEmbedder(cfg Config) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("embedding API key is required (set OPENAI_API_KEY)")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "text-embedding-3-small"
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Encode embeds texts in batches, preserving input order.
func (e *OpenAIEmbedder) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += openaiBatchSize {
		end := start + openaiBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Model: openai.EmbeddingModel(e.model),
			Input: texts[start:end],
		})
		if err != nil {
			return nil, fmt.Errorf("embeddings request: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, fmt.Errorf("embeddings request: got %d vectors for %d inputs", len(resp.Data), end-start)
		}

		for _, d := range resp.Data {
			v := make([]float32, len(d.Embedding))
			copy(v, d.Embedding)
			l2normalize(v)
			out = append(out, v)
		}
	}

	return out, nil
}

// l2normalize scales a vector to unit length so dot product equals
// cosine similarity.
func l2normalize(v []float32) {
	var sum float32
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range v {
		v[i] *= inv
	}
}
