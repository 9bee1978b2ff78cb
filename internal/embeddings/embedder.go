// ABOUTME: Embedding provider interface for converting note text to vectors.
// ABOUTME: Implementations include a remote HTTP provider and a deterministic mock.
package embeddings

// Embedder generates vector embeddings from text.
type Embedder interface {
	// Embed returns a vector embedding for the given text.
	Embed(text string) ([]float64, error)

	// Dimension returns the dimensionality of the output vectors,
	// or 0 if it is not yet known.
	Dimension() int
}
