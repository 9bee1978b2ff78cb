// ABOUTME: MCP server initialization and configuration for orbit.
// ABOUTME: Sets up server with note tools for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/orbit/internal/embeddings"
	"github.com/2389-research/orbit/internal/placement"
	"github.com/2389-research/orbit/internal/storage"
)

// Server wraps the MCP server with note storage and position sync.
type Server struct {
	mcp      *gomcp.Server
	store    storage.NoteStore
	syncer   *placement.Syncer
	embedder embeddings.Embedder
}

// ServerOption configures optional Server dependencies.
type ServerOption func(*Server)

// WithEmbedder sets the embedding provider used for semantic search.
func WithEmbedder(e embeddings.Embedder) ServerOption {
	return func(s *Server) {
		s.embedder = e
	}
}

// NewServer creates an MCP server with note capabilities.
func NewServer(store storage.NoteStore, syncer *placement.Syncer, opts ...ServerOption) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("note store is required")
	}
	if syncer == nil {
		return nil, fmt.Errorf("position syncer is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "orbit",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcp:    mcpServer,
		store:  store,
		syncer: syncer,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerNoteTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
