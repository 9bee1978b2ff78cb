// ABOUTME: Tests for MCP server creation and validation.
// ABOUTME: Verifies server requires both note store and position syncer.
package mcp

import (
	"testing"

	"github.com/2389-research/orbit/internal/embeddings"
	"github.com/2389-research/orbit/internal/placement"
	"github.com/2389-research/orbit/internal/position"
	"github.com/2389-research/orbit/internal/storage"
)

func TestNewServerRequiresStore(t *testing.T) {
	store, _ := storage.NewJSONNoteStore(t.TempDir())
	syncer, _ := placement.NewSyncer(store, nil, position.NewEngine(3))

	_, err := NewServer(nil, syncer)
	if err == nil {
		t.Error("expected error when note store is nil")
	}
}

func TestNewServerRequiresSyncer(t *testing.T) {
	store, _ := storage.NewJSONNoteStore(t.TempDir())

	_, err := NewServer(store, nil)
	if err == nil {
		t.Error("expected error when syncer is nil")
	}
}

func TestNewServerSuccess(t *testing.T) {
	store, _ := storage.NewJSONNoteStore(t.TempDir())
	syncer, _ := placement.NewSyncer(store, nil, position.NewEngine(3))

	server, err := NewServer(store, syncer)
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server == nil {
		t.Error("expected non-nil server")
	}
}

func TestNewServerWithEmbedder(t *testing.T) {
	store, _ := storage.NewJSONNoteStore(t.TempDir())
	embedder := embeddings.NewMockEmbedder(8)
	syncer, _ := placement.NewSyncer(store, embedder, position.NewEngine(3))

	server, err := NewServer(store, syncer, WithEmbedder(embedder))
	if err != nil {
		t.Fatalf("NewServer error: %v", err)
	}
	if server.embedder == nil {
		t.Error("expected embedder to be set")
	}
}
