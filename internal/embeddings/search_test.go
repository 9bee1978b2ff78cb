// ABOUTME: Tests for cosine similarity and semantic search over notes.
// ABOUTME: Uses the deterministic mock embedder for stable ranking assertions.
package embeddings

import (
	"math"
	"testing"

	"github.com/2389-research/orbit/internal/models"
)

func TestCosineSimilarityIdentical(t *testing.T) {
	a := []float64{1, 2, 3}
	if score := CosineSimilarity(a, a); math.Abs(score-1.0) > 1e-9 {
		t.Errorf("expected ~1.0 for identical vectors, got %f", score)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	score := CosineSimilarity([]float64{1, 0, 0}, []float64{0, 1, 0})
	if math.Abs(score) > 1e-9 {
		t.Errorf("expected ~0.0 for orthogonal vectors, got %f", score)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	score := CosineSimilarity([]float64{1, 0, 0}, []float64{-1, 0, 0})
	if math.Abs(score+1.0) > 1e-9 {
		t.Errorf("expected ~-1.0 for opposite vectors, got %f", score)
	}
}

func TestCosineSimilarityDegenerateInputs(t *testing.T) {
	if score := CosineSimilarity([]float64{1, 2}, []float64{1, 2, 3}); score != 0 {
		t.Errorf("expected 0 for different lengths, got %f", score)
	}
	if score := CosineSimilarity([]float64{0, 0}, []float64{1, 2}); score != 0 {
		t.Errorf("expected 0 for zero vector, got %f", score)
	}
	if score := CosineSimilarity(nil, nil); score != 0 {
		t.Errorf("expected 0 for empty vectors, got %f", score)
	}
}

func TestMockEmbedderDeterministic(t *testing.T) {
	embedder := NewMockEmbedder(8)

	first, err := embedder.Embed("same text")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	second, err := embedder.Embed("same text")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	if !models.VectorsEqual(first, second) {
		t.Error("identical text produced different embeddings")
	}

	other, err := embedder.Embed("different text")
	if err != nil {
		t.Fatalf("Embed error: %v", err)
	}
	if models.VectorsEqual(first, other) {
		t.Error("different text produced identical embeddings")
	}

	if len(first) != 8 {
		t.Errorf("got %d dimensions, want 8", len(first))
	}
	if embedder.Dimension() != 8 {
		t.Errorf("Dimension() = %d, want 8", embedder.Dimension())
	}
}

func TestMockEmbedderRejectsBlankText(t *testing.T) {
	embedder := NewMockEmbedder(8)
	if _, err := embedder.Embed(" \t\n"); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestSearchRanksExactMatchFirst(t *testing.T) {
	embedder := NewMockEmbedder(16)

	var notes []*models.Note
	for _, content := range []string{"coffee brewing", "orbital mechanics", "sourdough starters"} {
		note := models.NewNote(content)
		vec, err := embedder.Embed(content)
		if err != nil {
			t.Fatalf("Embed error: %v", err)
		}
		note.Embedding = vec
		notes = append(notes, note)
	}

	results, err := Search(embedder, notes, "orbital mechanics", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].Note.Content != "orbital mechanics" {
		t.Errorf("top result = %q, want the exact match", results[0].Note.Content)
	}
	if math.Abs(results[0].Score-1.0) > 1e-9 {
		t.Errorf("top score = %f, want ~1.0", results[0].Score)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results out of order at %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
}

func TestSearchSkipsUnembeddedNotes(t *testing.T) {
	embedder := NewMockEmbedder(16)

	embeddedNote := models.NewNote("embedded")
	vec, _ := embedder.Embed("embedded")
	embeddedNote.Embedding = vec
	bareNote := models.NewNote("no vector")

	results, err := Search(embedder, []*models.Note{bareNote, embeddedNote}, "embedded", 10)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Note != embeddedNote {
		t.Error("expected only the embedded note in results")
	}
}

func TestSearchAppliesLimit(t *testing.T) {
	embedder := NewMockEmbedder(16)

	var notes []*models.Note
	for _, content := range []string{"one", "two", "three", "four"} {
		note := models.NewNote(content)
		vec, _ := embedder.Embed(content)
		note.Embedding = vec
		notes = append(notes, note)
	}

	results, err := Search(embedder, notes, "one", 2)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

func TestSearchRequiresEmbedder(t *testing.T) {
	if _, err := Search(nil, nil, "query", 10); err == nil {
		t.Error("expected error without an embedder")
	}
}
