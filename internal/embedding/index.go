package embedding

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Result is one similarity hit: the chunk's position in the corpus and
// its cosine similarity to the query.
type Result struct {
	ChunkIndex int
	Score      float32
}

// Index holds the chunks and their vectors. Built once at startup and
// immutable afterwards; rebuilding requires a process restart, so no
// locking is needed on the read path.
type Index struct {
	chunks   []string
	vectors  [][]float32
	embedder Embedder
}

// Build encodes every chunk once and returns the ready index.
func Build(ctx context.Context, chunks []string, embedder Embedder) (*Index, error) {
	vectors, err := embedder.Encode(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embed corpus: %d vectors for %d chunks", len(vectors), len(chunks))
	}

	return &Index{
		chunks:   chunks,
		vectors:  vectors,
		embedder: embedder,
	}, nil
}

// Query embeds the text and returns the topK most similar chunks by
// descending score. Ties keep original chunk order (stable sort).
func (ix *Index) Query(ctx context.Context, text string, topK int) ([]Result, error) {
	qvecs, err := ix.embedder.Encode(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	qv := qvecs[0]

	results := make([]Result, len(ix.vectors))
	for i, v := range ix.vectors {
		results[i] = Result{ChunkIndex: i, Score: cosine(qv, v)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// Chunk returns the text of the chunk at index i.
func (ix *Index) Chunk(i int) string {
	return ix.chunks[i]
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// cosine computes cosine similarity between two vectors. Mismatched or
// zero-norm vectors score 0.
func cosine(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dot, na, nb float32
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(na))) * float32(math.Sqrt(float64(nb))))
}
