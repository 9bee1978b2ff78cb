// ABOUTME: CLI commands for semantic space maintenance.
// ABOUTME: Provides embeddings regenerate, positions refresh, and map subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/orbit/internal/placement"
)

var embeddingsCmd = &cobra.Command{
	Use:   "embeddings",
	Short: "Manage note embeddings",
}

var embeddingsRegenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Regenerate all embeddings",
	Long:  "Request fresh embeddings from the provider for every note and recompute coordinates for the ones that changed.",
	RunE:  runEmbeddingsRegenerate,
}

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Manage note positions",
}

var positionsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Recompute all positions",
	Long:  "Recompute every note's coordinate from its stored embedding without contacting the provider.",
	RunE:  runPositionsRefresh,
}

var mapCmd = &cobra.Command{
	Use:   "map",
	Short: "Print the semantic map",
	Long:  "Print every placed note's coordinate alongside its content.",
	RunE:  runMap,
}

var regenerateForce bool

func init() {
	rootCmd.AddCommand(embeddingsCmd)
	embeddingsCmd.AddCommand(embeddingsRegenerateCmd)
	rootCmd.AddCommand(positionsCmd)
	positionsCmd.AddCommand(positionsRefreshCmd)
	rootCmd.AddCommand(mapCmd)

	embeddingsRegenerateCmd.Flags().BoolVar(&regenerateForce, "force", false, "Recompute coordinates even if no embedding changed")
}

func runEmbeddingsRegenerate(cmd *cobra.Command, args []string) error {
	if err := globalSyncer.RegenerateEmbeddings(regenerateForce); err != nil {
		if errors.Is(err, placement.ErrProviderUnavailable) {
			return fmt.Errorf("no embedding provider configured; run 'orbit setup' first")
		}
		return fmt.Errorf("failed to regenerate embeddings: %w", err)
	}
	fmt.Println("Embeddings regenerated.")
	return nil
}

func runPositionsRefresh(cmd *cobra.Command, args []string) error {
	if err := globalSyncer.RefreshPositions(); err != nil {
		if errors.Is(err, placement.ErrNoEmbeddedNotes) {
			return fmt.Errorf("no notes carry embeddings; add notes or regenerate embeddings first")
		}
		return fmt.Errorf("failed to refresh positions: %w", err)
	}
	fmt.Println("Positions refreshed.")
	return nil
}

func runMap(cmd *cobra.Command, args []string) error {
	placed := 0
	for _, note := range globalStore.All() {
		if note.Position == nil {
			continue
		}
		placed++
		fmt.Printf("%s %s\n", renderPosition(note.Position), firstLine(note.Content))
	}
	if placed == 0 {
		fmt.Println("No placed notes. Add notes with a provider configured, or run 'orbit positions refresh'.")
	}
	return nil
}
