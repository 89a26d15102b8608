// Package embedding encodes text into vectors and serves nearest-neighbor
// lookups over the knowledge chunks.
package embedding

import "context"

// Embedder encodes texts into fixed-length vectors. Implementations must
// return one vector per input text, in input order.
type Embedder interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}
