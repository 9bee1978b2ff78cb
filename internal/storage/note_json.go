// ABOUTME: JSON file-per-note storage with atomic replace writes.
// ABOUTME: Loads tolerantly by skipping malformed records and persists one file per note keyed by id.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/mdstore"

	"github.com/2389-research/orbit/internal/models"
)

// noteRecord is the durable JSON layout, one file per note.
type noteRecord struct {
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	Content   string    `json:"content"`
	Embedding []float64 `json:"embedding"`
	Position  []float64 `json:"position"`
}

// JSONNoteStore stores notes as <id>.json files in a single directory.
type JSONNoteStore struct {
	dir   string
	notes []*models.Note
}

// NewJSONNoteStore creates a store rooted at dir. The directory is created
// lazily on first persist; a missing directory loads as an empty store.
func NewJSONNoteStore(dir string) (*JSONNoteStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("notes directory is required")
	}
	return &JSONNoteStore{dir: dir}, nil
}

// Load reads every note record in the store directory into memory. A record
// that cannot be read or parsed is skipped with a warning; loading never
// aborts for one bad record.
func (s *JSONNoteStore) Load() error {
	s.notes = s.notes[:0]

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("notes directory missing, starting empty", "dir", s.dir)
			return nil
		}
		slog.Warn("notes directory unreadable, starting empty", "dir", s.dir, "error", err)
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, entry.Name())
		note, err := readNoteFile(path)
		if err != nil {
			slog.Warn("skipping unreadable note record", "path", path, "error", err)
			continue
		}
		s.notes = append(s.notes, note)
	}

	// Directory listing order is lexical by id; restore creation order.
	sort.SliceStable(s.notes, func(i, j int) bool {
		return s.notes[i].CreatedAt.Before(s.notes[j].CreatedAt)
	})

	slog.Info("notes loaded", "count", len(s.notes), "dir", s.dir)
	return nil
}

// Append adds a note to the in-memory collection without persisting it.
func (s *JSONNoteStore) Append(note *models.Note) {
	s.notes = append(s.notes, note)
}

// All returns the in-memory collection in creation order.
func (s *JSONNoteStore) All() []*models.Note {
	return s.notes
}

// GetByID returns the note with the given id, or ErrNotFound.
func (s *JSONNoteStore) GetByID(id string) (*models.Note, error) {
	for _, note := range s.notes {
		if note.ID.String() == id {
			return note, nil
		}
	}
	return nil, ErrNotFound
}

// Persist writes one note's current field values to <dir>/<id>.json using an
// atomic temp-and-rename replace, so a failed write never leaves a partial
// record and never touches other notes' files.
func (s *JSONNoteStore) Persist(note *models.Note) error {
	rec := noteRecord{
		ID:        note.ID.String(),
		CreatedAt: note.CreatedAt.Format(time.RFC3339Nano),
		Content:   note.Content,
		Embedding: note.Embedding,
		Position:  note.Position,
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode note %s: %w", rec.ID, err)
	}

	path := filepath.Join(s.dir, rec.ID+".json")
	if err := mdstore.AtomicWrite(path, data); err != nil {
		return fmt.Errorf("failed to write note %s: %w", rec.ID, err)
	}
	return nil
}

// Close releases any resources held by the store.
func (s *JSONNoteStore) Close() error {
	return nil
}

// readNoteFile parses a single note record file.
func readNoteFile(path string) (*models.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}

	var rec noteRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}

	id, err := uuid.Parse(rec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid note id %q: %w", rec.ID, err)
	}

	createdAt, err := time.Parse(time.RFC3339Nano, rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", rec.CreatedAt, err)
	}

	return &models.Note{
		ID:        id,
		CreatedAt: createdAt,
		Content:   rec.Content,
		Embedding: rec.Embedding,
		Position:  rec.Position,
	}, nil
}
