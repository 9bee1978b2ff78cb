// ABOUTME: Semantic search over embedded notes using cosine similarity.
// ABOUTME: Ranks notes against a query embedding, descending by score.
package embeddings

import (
	"fmt"
	"math"
	"sort"

	"github.com/2389-research/orbit/internal/models"
)

// SearchResult pairs a note with its relevance score.
type SearchResult struct {
	Note  *models.Note
	Score float64
}

// CosineSimilarity computes the cosine similarity between two vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Search embeds query and ranks all embedded notes against it, descending by
// score. Notes without embeddings are skipped. limit <= 0 selects 10.
func Search(embedder Embedder, notes []*models.Note, query string, limit int) ([]SearchResult, error) {
	if embedder == nil {
		return nil, fmt.Errorf("no embedding provider available")
	}

	queryVec, err := embedder.Embed(query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	var results []SearchResult
	for _, note := range notes {
		if !note.HasEmbedding() {
			continue
		}
		results = append(results, SearchResult{
			Note:  note,
			Score: CosineSimilarity(queryVec, note.Embedding),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit <= 0 {
		limit = 10
	}
	if limit > len(results) {
		limit = len(results)
	}

	return results[:limit], nil
}
