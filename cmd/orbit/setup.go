// ABOUTME: Cobra command for interactive embedding provider setup.
// ABOUTME: Launches a bubbletea TUI wizard to collect and validate provider credentials.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/orbit/internal/config"
	"github.com/2389-research/orbit/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Connect an embedding provider",
	Long:  "Interactive wizard to configure the embedding provider API settings.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(
		cfg.Embedding.APIURL,
		cfg.Embedding.Model,
		cfg.Embedding.APIKey,
	)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	apiURL, providerModel, apiKey := final.Result()
	cfg.Embedding.APIURL = apiURL
	cfg.Embedding.Model = providerModel
	cfg.Embedding.APIKey = apiKey

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	return nil
}
