// ABOUTME: Core data model for notes and their derived spatial positions.
// ABOUTME: Provides the Note entity plus float vector helpers shared across packages.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is a short text note pinned to a point in embedding-derived space.
//
// Embedding is nil until the provider produces a vector for the content.
// Position is wholly derived state: it is non-nil only while Embedding is
// non-nil and the most recent synchronization pass included this note in a
// reduction batch. Only the placement syncer writes Embedding or Position.
type Note struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Content   string
	Embedding []float64
	Position  []float64
}

// NewNote creates a note with a generated UUID and creation timestamp.
func NewNote(content string) *Note {
	return &Note{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Content:   content,
	}
}

// HasEmbedding reports whether the note currently holds an embedding.
func (n *Note) HasEmbedding() bool {
	return n.Embedding != nil
}

// VectorsEqual reports element-wise equality of two float vectors.
// Two nil vectors are equal; a nil vector never equals a non-nil one.
func VectorsEqual(a, b []float64) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CloneVector returns an independent copy of v, preserving nil.
func CloneVector(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
