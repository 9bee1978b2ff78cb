// ABOUTME: Store contract for durable note collections.
// ABOUTME: Defines load, append, lookup, and per-note persistence operations.
package storage

import (
	"errors"

	"github.com/2389-research/orbit/internal/models"
)

// ErrNotFound is returned by GetByID when no note has the requested id.
var ErrNotFound = errors.New("note not found")

// NoteStore defines operations for the in-memory note collection and its
// durable representation. Callers other than the placement syncer must treat
// returned notes as read-only: Embedding and Position are derived fields.
type NoteStore interface {
	// Load reads all persisted records into memory. Malformed records are
	// skipped with a warning; an unreadable location yields an empty store.
	Load() error

	// Append adds a note to the in-memory collection without persisting it.
	Append(note *models.Note)

	// All returns the in-memory collection in creation order.
	All() []*models.Note

	// GetByID returns the note with the given id, or ErrNotFound.
	GetByID(id string) (*models.Note, error)

	// Persist durably writes one note's current field values. Safe to call
	// repeatedly; a failed write never corrupts other notes' records.
	Persist(note *models.Note) error

	// Close releases any resources held by the store.
	Close() error
}
