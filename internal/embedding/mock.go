package embedding

import (
	"context"
	"hash/fnv"
	"sync"
)

// MockEmbedder is a deterministic Embedder for testing. Each text hashes
// to a stable vector, so identical texts always embed identically and
// self-similarity is maximal under cosine scoring.
type MockEmbedder struct {
	Dim int

	mu    sync.Mutex
	Calls [][]string
}

// NewMockEmbedder creates a MockEmbedder with the given dimension.
func NewMockEmbedder(dim int) *MockEmbedder {
	return &MockEmbedder{Dim: dim}
}

func (m *MockEmbedder) Encode(_ context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, texts)
	m.mu.Unlock()

	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	return out, nil
}

func (m *MockEmbedder) vector(text string) []float32 {
	v := make([]float32, m.Dim)
	h := fnv.New32a()
	for i, r := range text {
		h.Write([]byte{byte(r)})
		v[(i+int(h.Sum32()))%m.Dim] += float32(h.Sum32()%997) / 997
	}
	l2normalize(v)
	return v
}

// CallCount returns the number of Encode calls made.
func (m *MockEmbedder) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
