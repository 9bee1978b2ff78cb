// ABOUTME: Root Cobra command and global flags for orbit CLI.
// ABOUTME: Sets up lifecycle hooks for config loading and store initialization.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/orbit/internal/config"
	"github.com/2389-research/orbit/internal/embeddings"
	"github.com/2389-research/orbit/internal/placement"
	"github.com/2389-research/orbit/internal/position"
	"github.com/2389-research/orbit/internal/storage"
)

var globalConfig *config.Config
var globalStore storage.NoteStore
var globalEmbedder embeddings.Embedder
var globalSyncer *placement.Syncer

var rootCmd = &cobra.Command{
	Use:   "orbit",
	Short: "Notes with a place in semantic space",
	Long: `
 ██████╗ ██████╗ ██████╗ ██╗████████╗
██╔═══██╗██╔══██╗██╔══██╗██║╚══██╔══╝
██║   ██║██████╔╝██████╔╝██║   ██║
██║   ██║██╔══██╗██╔══██╗██║   ██║
╚██████╔╝██║  ██║██████╔╝██║   ██║
 ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚═╝   ╚═╝

Every note gets a coordinate in a shared semantic space.
Nearby notes cover related topics. Local-first, provider-optional.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "setup" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		globalConfig = cfg

		notesPath, err := cfg.GetNotesPath()
		if err != nil {
			return fmt.Errorf("failed to resolve notes path: %w", err)
		}
		store, err := storage.NewJSONNoteStore(notesPath)
		if err != nil {
			return fmt.Errorf("failed to open note store: %w", err)
		}
		if err := store.Load(); err != nil {
			return fmt.Errorf("failed to load notes: %w", err)
		}
		globalStore = store

		if cfg.HasProvider() {
			globalEmbedder = embeddings.NewRemoteEmbedder(
				cfg.Embedding.APIURL,
				cfg.Embedding.APIKey,
				cfg.Embedding.Model,
				cfg.Embedding.Dimension,
			)
		}

		engine := position.NewEngine(cfg.GetSpaceDimensions())
		syncer, err := placement.NewSyncer(globalStore, globalEmbedder, engine)
		if err != nil {
			return fmt.Errorf("failed to initialize position sync: %w", err)
		}
		globalSyncer = syncer

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if globalStore != nil {
			_ = globalStore.Close()
			globalStore = nil
		}
		return nil
	},
}
