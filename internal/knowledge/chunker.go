// Package knowledge loads the reference text and slices it into
// overlapping chunks for the embedding index.
package knowledge

const (
	// DefaultChunkSize is the window length in characters.
	DefaultChunkSize = 300

	// DefaultOverlap is how many characters consecutive windows share.
	DefaultOverlap = 50
)

// Chunk splits text into overlapping fixed-size windows. Windows start
// every size-overlap characters from offset 0; the final chunk may be
// shorter than size. Whitespace-only chunks are kept: filtering them
// would shift chunk indices out of sync with the embedding index.
//
// Empty input yields exactly one empty chunk, so the index is never
// built over zero vectors. Chunk count is ceil(len(text)/(size-overlap)),
// with a floor of one.
func Chunk(text string, size, overlap int) []string {
	if size <= 0 || overlap < 0 || overlap >= size {
		panic("knowledge: overlap must be non-negative and smaller than size")
	}

	step := size - overlap
	var chunks []string
	for i := 0; ; i += step {
		end := i + size
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
		if i+step >= len(text) {
			break
		}
	}
	return chunks
}

// ChunkDefault applies the standard window parameters.
func ChunkDefault(text string) []string {
	return Chunk(text, DefaultChunkSize, DefaultOverlap)
}
