// ABOUTME: CLI commands for note operations.
// ABOUTME: Provides add, list, show, and search subcommands.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/2389-research/orbit/internal/embeddings"
	"github.com/2389-research/orbit/internal/placement"
)

var addCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Add a note",
	Long:  "Store a note, embed it, and assign it a coordinate in the semantic space.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  "List notes in chronological order with their coordinates.",
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a note",
	Long:  "Show the full content and coordinate of a specific note.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search notes by meaning",
	Long:  "Rank notes by semantic similarity to the query. Requires an embedding provider.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

// Flags
var (
	listLimit   int
	searchLimit int
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)

	listCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of notes to show")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
}

func runAdd(cmd *cobra.Command, args []string) error {
	note, err := globalSyncer.AddNote(args[0])
	if err != nil {
		if errors.Is(err, placement.ErrEmptyContent) {
			return fmt.Errorf("note content is empty")
		}
		return fmt.Errorf("failed to add note: %w", err)
	}

	fmt.Printf("Note stored: %s\n", note.ID)
	if note.HasEmbedding() {
		fmt.Printf("Position: %s\n", renderPosition(note.Position))
	} else {
		fmt.Println("No embedding provider configured; stored without a coordinate. Run 'orbit setup'.")
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	notes := globalStore.All()
	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}
	if listLimit > 0 && len(notes) > listLimit {
		notes = notes[len(notes)-listLimit:]
	}

	for _, note := range notes {
		fmt.Printf("%s [%s] %s %s\n",
			note.CreatedAt.Format("2006-01-02 15:04:05"),
			note.ID,
			renderPosition(note.Position),
			firstLine(note.Content),
		)
	}
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	note, err := globalStore.GetByID(args[0])
	if err != nil {
		return fmt.Errorf("failed to read note: %w", err)
	}

	fmt.Printf("ID: %s\n", note.ID)
	fmt.Printf("Date: %s\n", note.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("Position: %s\n", renderPosition(note.Position))
	fmt.Printf("\n%s\n", note.Content)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	if globalEmbedder == nil {
		return fmt.Errorf("no embedding provider configured; run 'orbit setup' first")
	}

	results, err := embeddings.Search(globalEmbedder, globalStore.All(), args[0], searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("No matching notes found.")
		return nil
	}

	for _, result := range results {
		fmt.Printf("%.3f [%s] %s %s\n",
			result.Score,
			result.Note.ID,
			renderPosition(result.Note.Position),
			firstLine(result.Note.Content),
		)
	}
	return nil
}

// renderPosition formats a coordinate for display, or a placeholder when unset.
func renderPosition(position []float64) string {
	if position == nil {
		return "(unplaced)"
	}
	parts := make([]string, len(position))
	for i, v := range position {
		parts[i] = fmt.Sprintf("%.3f", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// firstLine returns the first line of content, truncated for list display.
func firstLine(content string) string {
	line := content
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	runes := []rune(line)
	if len(runes) > 60 {
		line = string(runes[:57]) + "..."
	}
	return line
}
