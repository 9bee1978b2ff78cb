// ABOUTME: MCP tool implementations for note operations.
// ABOUTME: Registers add_note, list_notes, read_note, search_notes, regenerate_embeddings, refresh_positions.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/orbit/internal/embeddings"
	"github.com/2389-research/orbit/internal/placement"
)

func (s *Server) registerNoteTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "add_note",
		Description: "Store a note. The note is embedded and assigned a coordinate in the shared semantic space; nearby notes cover related topics.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"content": {"type": "string", "description": "The note text to store"}
			},
			"required": ["content"]
		}`),
	}, s.handleAddNote)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_notes",
		Description: "List stored notes in chronological order with their semantic coordinates.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "number", "description": "Maximum number of notes to return (default: 20)"}
			}
		}`),
	}, s.handleListNotes)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "read_note",
		Description: "Read the full content of a specific note by its ID.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleReadNote)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_notes",
		Description: "Search notes by meaning using the embedding provider. Returns notes ranked by semantic similarity to the query.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query text"},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "regenerate_embeddings",
		Description: "Request fresh embeddings for every note from the provider and recompute coordinates for the ones that changed. Useful after switching embedding models.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"force": {"type": "boolean", "description": "Recompute coordinates even if no embedding changed"}
			}
		}`),
	}, s.handleRegenerateEmbeddings)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "refresh_positions",
		Description: "Recompute every note's coordinate from its stored embedding without contacting the provider.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {}
		}`),
	}, s.handleRefreshPositions)
}

func (s *Server) handleAddNote(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	note, err := s.syncer.AddNote(args.Content)
	if err != nil {
		if errors.Is(err, placement.ErrEmptyContent) {
			return toolError("content is required"), nil
		}
		return toolError("failed to add note: %v", err), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Note stored: %s\n", note.ID))
	if note.HasEmbedding() {
		sb.WriteString(fmt.Sprintf("Position: %s\n", formatPosition(note.Position)))
	} else {
		sb.WriteString("No embedding provider available; the note was stored without a coordinate.\n")
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleListNotes(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Limit int `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}
	if args.Limit <= 0 {
		args.Limit = 20
	}

	notes := s.store.All()
	if len(notes) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No notes found."}},
		}, nil
	}
	if len(notes) > args.Limit {
		notes = notes[len(notes)-args.Limit:]
	}

	var sb strings.Builder
	for i, note := range notes {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("- %s [%s] %s %s\n",
			note.CreatedAt.Format("2006-01-02 15:04:05"),
			note.ID,
			formatPosition(note.Position),
			summarize(note.Content),
		))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleReadNote(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.ID == "" {
		return toolError("id is required"), nil
	}

	note, err := s.store.GetByID(args.ID)
	if err != nil {
		return toolError("failed to read note: %v", err), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ID: %s\n", note.ID))
	sb.WriteString(fmt.Sprintf("Date: %s\n", note.CreatedAt.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("Position: %s\n", formatPosition(note.Position)))
	sb.WriteString(fmt.Sprintf("\n%s\n", note.Content))

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleSearchNotes(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Query == "" {
		return toolError("query is required"), nil
	}
	if s.embedder == nil {
		return toolError("no embedding provider configured; run setup first"), nil
	}

	results, err := embeddings.Search(s.embedder, s.store.All(), args.Query, args.Limit)
	if err != nil {
		return toolError("search failed: %v", err), nil
	}

	if len(results) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No matching notes found."}},
		}, nil
	}

	var sb strings.Builder
	for i, result := range results {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		sb.WriteString(fmt.Sprintf("Note: %s (score %.3f)\n", result.Note.ID, result.Score))
		sb.WriteString(fmt.Sprintf("Date: %s\n", result.Note.CreatedAt.Format("2006-01-02 15:04:05")))
		sb.WriteString(fmt.Sprintf("Position: %s\n", formatPosition(result.Note.Position)))
		sb.WriteString(fmt.Sprintf("\n%s\n", result.Note.Content))
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

func (s *Server) handleRegenerateEmbeddings(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Force bool `json:"force"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if err := s.syncer.RegenerateEmbeddings(args.Force); err != nil {
		if errors.Is(err, placement.ErrProviderUnavailable) {
			return toolError("no embedding provider configured; run setup first"), nil
		}
		return toolError("failed to regenerate embeddings: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: "Embeddings regenerated."}},
	}, nil
}

func (s *Server) handleRefreshPositions(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	if err := s.syncer.RefreshPositions(); err != nil {
		if errors.Is(err, placement.ErrNoEmbeddedNotes) {
			return toolError("no notes carry embeddings; add notes or regenerate embeddings first"), nil
		}
		return toolError("failed to refresh positions: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: "Positions refreshed."}},
	}, nil
}

// formatPosition renders a coordinate for display, or a placeholder when unset.
func formatPosition(position []float64) string {
	if position == nil {
		return "(unplaced)"
	}
	parts := make([]string, len(position))
	for i, v := range position {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// summarize returns the first line of content, truncated for list display.
func summarize(content string) string {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	if len(line) > 60 {
		line = line[:57] + "..."
	}
	return line
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
