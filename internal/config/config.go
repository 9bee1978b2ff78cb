// ABOUTME: Configuration management for orbit with YAML config loading.
// ABOUTME: Handles embedding provider settings, notes paths, and ~ expansion.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config stores orbit configuration loaded from ~/.config/orbit/config.yaml.
type Config struct {
	Notes     NotesConfig     `yaml:"notes"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Space     SpaceConfig     `yaml:"space"`
}

// NotesConfig holds optional path overrides for note storage.
type NotesConfig struct {
	Path string `yaml:"path"`
}

// EmbeddingConfig holds remote embedding provider settings.
type EmbeddingConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	Dimension int    `yaml:"dimension"`
}

// SpaceConfig holds position space settings.
type SpaceConfig struct {
	Dimensions int `yaml:"dimensions"`
}

// HasProvider returns true if an embedding provider is configured.
func (c *Config) HasProvider() bool {
	return c.Embedding.APIURL != "" && c.Embedding.Model != ""
}

// GetNotesPath returns the notes directory, defaulting to ~/.local/share/orbit/notes.
func (c *Config) GetNotesPath() (string, error) {
	if c.Notes.Path != "" {
		return ExpandPath(c.Notes.Path)
	}
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "orbit", "notes"), nil
}

// GetSpaceDimensions returns the configured position dimensionality, defaulting to 3.
func (c *Config) GetSpaceDimensions() int {
	if c.Space.Dimensions > 0 {
		return c.Space.Dimensions
	}
	return 3
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "orbit", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
