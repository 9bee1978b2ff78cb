// ABOUTME: Deterministic mock embedder for tests and offline use.
// ABOUTME: Derives stable pseudo-embeddings from an FNV hash of the input text.
package embeddings

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// MockEmbedder produces deterministic vectors: identical text always yields
// an identical embedding, which makes no-op regeneration observable in tests.
type MockEmbedder struct {
	dimension int
}

// NewMockEmbedder creates a mock embedder with the given vector length.
// A non-positive value selects a small default.
func NewMockEmbedder(dimension int) *MockEmbedder {
	if dimension <= 0 {
		dimension = 8
	}
	return &MockEmbedder{dimension: dimension}
}

// Embed derives a stable pseudo-embedding from text.
func (m *MockEmbedder) Embed(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is empty")
	}

	vec := make([]float64, m.dimension)
	for i := range vec {
		h := fnv.New64a()
		fmt.Fprintf(h, "%s|%d", text, i)
		// Map the hash onto [-1, 1).
		vec[i] = float64(int64(h.Sum64())) / float64(1<<63)
	}
	return vec, nil
}

// Dimension returns the vector length this embedder produces.
func (m *MockEmbedder) Dimension() int {
	return m.dimension
}
