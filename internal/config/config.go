// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/draftforge/draftforge/internal/draft"
)

// Config represents the application configuration.
type Config struct {
	// Draft holds the pick-engine weights and round layout.
	Draft draft.Config `toml:"draft"`

	// Deck holds the deck builder targets.
	Deck draft.DeckConfig `toml:"deck"`

	// Catalog configures card data loading.
	Catalog CatalogConfig `toml:"catalog"`

	// Storage configures the analytics database.
	Storage StorageConfig `toml:"storage"`

	// Export configures analytics output.
	Export ExportConfig `toml:"export"`
}

// CatalogConfig contains card catalog settings.
type CatalogConfig struct {
	Path      string `toml:"path"`       // Path to the JSON card catalog
	Watch     bool   `toml:"watch"`      // Reload the catalog on file changes
	RemoteURL string `toml:"remote_url"` // Optional base URL for fetching sets
	SetCode   string `toml:"set_code"`   // Set to fetch when remote_url is set
}

// StorageConfig contains analytics database settings.
type StorageConfig struct {
	Path        string `toml:"path"`         // SQLite database path, ":memory:" for tests
	AutoMigrate bool   `toml:"auto_migrate"` // Apply pending migrations on open
}

// ExportConfig contains analytics export settings.
type ExportConfig struct {
	Dir    string `toml:"dir"`    // Directory for JSON/CSV exports and charts
	Charts bool   `toml:"charts"` // Render curve/color charts alongside exports
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Draft: draft.DefaultConfig(),
		Deck:  draft.DefaultDeckConfig(),
		Catalog: CatalogConfig{
			Path:  "catalog.json",
			Watch: false,
		},
		Storage: StorageConfig{
			Path:        "draftforge.db",
			AutoMigrate: true,
		},
		Export: ExportConfig{
			Dir:    "exports",
			Charts: true,
		},
	}
}

// Load loads the configuration from the given path. A missing file yields
// the default configuration.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save writes the configuration to the given path.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values. Invalid engine settings are
// fatal and reported before any picks occur.
func (c *Config) Validate() error {
	if err := c.Draft.Validate(); err != nil {
		return fmt.Errorf("draft config: %w", err)
	}
	if err := c.Deck.Validate(); err != nil {
		return fmt.Errorf("deck config: %w", err)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path cannot be empty")
	}
	return nil
}
