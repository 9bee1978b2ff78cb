// ABOUTME: Position synchronization over the note store.
// ABOUTME: Recomputes coordinates after embedding-affecting mutations and persists only changed notes.
package placement

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/2389-research/orbit/internal/embeddings"
	"github.com/2389-research/orbit/internal/models"
	"github.com/2389-research/orbit/internal/storage"
)

var (
	// ErrEmptyContent rejects blank note content before any mutation.
	ErrEmptyContent = errors.New("note content is empty")

	// ErrProviderUnavailable signals that no embedding provider is configured.
	ErrProviderUnavailable = errors.New("embedding provider unavailable")

	// ErrNoEmbeddedNotes signals a position refresh over a store in which
	// no note carries an embedding.
	ErrNoEmbeddedNotes = errors.New("no embedded notes")
)

// Reducer maps a batch of equal-length vectors to one fixed-length
// coordinate per input, preserving order. Satisfied by *position.Engine.
type Reducer interface {
	Reduce(vectors [][]float64) ([][]float64, error)
	Dimensions() int
}

// Syncer orchestrates embedding, reduction, and persistence for one store.
//
// Every operation holds the syncer lock for its full duration, provider and
// storage I/O included: a sync pass reads and rewrites every note's derived
// fields, so a concurrent mutation mid-pass would observe inconsistent state.
type Syncer struct {
	mu       sync.Mutex
	store    storage.NoteStore
	embedder embeddings.Embedder // nil when the provider failed to initialize
	engine   Reducer
}

// NewSyncer creates a syncer over store. embedder may be nil, in which case
// notes are stored without embeddings until a provider becomes available.
func NewSyncer(store storage.NoteStore, embedder embeddings.Embedder, engine Reducer) (*Syncer, error) {
	if store == nil {
		return nil, fmt.Errorf("note store is required")
	}
	if engine == nil {
		return nil, fmt.Errorf("position engine is required")
	}
	return &Syncer{store: store, embedder: embedder, engine: engine}, nil
}

// AddNote creates a note for content, embeds it, recomputes positions across
// the whole store, and persists the new note plus every other note whose
// derived fields changed. A provider failure degrades to a note without an
// embedding rather than an error.
func (s *Syncer) AddNote(content string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := models.NewNote(content)
	if s.embedder == nil {
		slog.Warn("no embedding provider, storing note without embedding", "note", note.ID)
	} else if vec, err := s.embedder.Embed(content); err != nil {
		slog.Warn("embedding failed, storing note without embedding", "note", note.ID, "error", err)
	} else {
		note.Embedding = vec
	}

	s.store.Append(note)

	dirty, _, syncErr := s.syncPass()
	if syncErr != nil {
		slog.Warn("position sync failed", "error", syncErr)
	}

	// The new note is persisted unconditionally; everything else only when
	// the pass dirtied it.
	if err := s.store.Persist(note); err != nil {
		return note, fmt.Errorf("failed to persist note %s: %w", note.ID, err)
	}
	for _, d := range dirty {
		if d == note {
			continue
		}
		if err := s.store.Persist(d); err != nil {
			return note, fmt.Errorf("failed to persist note %s: %w", d.ID, err)
		}
	}

	slog.Info("note added", "note", note.ID, "embedded", note.HasEmbedding(), "repositioned", len(dirty))
	return note, nil
}

// RegenerateEmbeddings requests a fresh embedding for every note and persists
// the ones whose embedding changed, before any position work. When at least
// one embedding changed, or force is set, a full position sync follows. A
// per-note provider failure leaves that note untouched; the batch continues.
func (s *Syncer) RegenerateEmbeddings(force bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embedder == nil {
		return ErrProviderUnavailable
	}

	changed := 0
	for _, note := range s.store.All() {
		vec, err := s.embedder.Embed(note.Content)
		if err != nil {
			slog.Warn("embedding regeneration failed, leaving note unchanged", "note", note.ID, "error", err)
			continue
		}
		if models.VectorsEqual(note.Embedding, vec) {
			continue
		}
		note.Embedding = vec
		if err := s.store.Persist(note); err != nil {
			return fmt.Errorf("failed to persist note %s: %w", note.ID, err)
		}
		changed++
	}

	if changed == 0 && !force {
		slog.Info("embeddings unchanged, skipping position sync")
		return nil
	}

	dirty, _, syncErr := s.syncPass()
	if syncErr != nil {
		slog.Warn("position sync failed", "error", syncErr)
	}
	if err := s.persistAll(dirty); err != nil {
		return err
	}

	slog.Info("embeddings regenerated", "changed", changed, "repositioned", len(dirty))
	return nil
}

// RefreshPositions runs a synchronization pass without regenerating any
// embeddings and persists the notes whose derived fields changed. It fails
// when no note in the store carries an embedding.
func (s *Syncer) RefreshPositions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty, embedded, syncErr := s.syncPass()
	if err := s.persistAll(dirty); err != nil {
		return err
	}
	if syncErr != nil {
		return syncErr
	}
	if embedded == 0 {
		return ErrNoEmbeddedNotes
	}

	slog.Info("positions refreshed", "repositioned", len(dirty))
	return nil
}

// syncPass recomputes positions for the whole store and returns the notes
// whose in-memory fields now differ from their persisted values, plus the
// size of the embedded partition. Callers persist the dirty notes.
//
// Unembedded notes that still hold a position are nulled first and count as
// dirty. When reduction fails the pass aborts without assigning any new
// positions, but those null-outs are not rolled back; they are returned as
// dirty alongside the error.
func (s *Syncer) syncPass() (dirty []*models.Note, embedded int, err error) {
	var batch []*models.Note
	for _, note := range s.store.All() {
		if note.HasEmbedding() {
			batch = append(batch, note)
			continue
		}
		if note.Position != nil {
			note.Position = nil
			dirty = append(dirty, note)
		}
	}

	if len(batch) == 0 {
		return dirty, 0, nil
	}

	vectors := make([][]float64, len(batch))
	for i, note := range batch {
		vectors[i] = note.Embedding
	}

	coords, err := s.engine.Reduce(vectors)
	if err != nil {
		return dirty, len(batch), fmt.Errorf("position reduction: %w", err)
	}

	for i, note := range batch {
		if models.VectorsEqual(note.Position, coords[i]) {
			continue
		}
		note.Position = coords[i]
		dirty = append(dirty, note)
	}

	return dirty, len(batch), nil
}

func (s *Syncer) persistAll(notes []*models.Note) error {
	for _, note := range notes {
		if err := s.store.Persist(note); err != nil {
			return fmt.Errorf("failed to persist note %s: %w", note.ID, err)
		}
	}
	return nil
}
