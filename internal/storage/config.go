package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Orphan handling modes, see tree.ParseOrphanPolicy.
const (
	OrphansDrop    = "drop"
	OrphansPromote = "promote"
)

// Config holds application configuration.
type Config struct {
	Backend  string `yaml:"backend"`
	DataPath string `yaml:"dataPath"`
	Orphans  string `yaml:"orphans"`
	Icon     string `yaml:"icon"`
}

// DefaultConfig returns the default configuration.
// DataPath is left empty and resolved from the backend by ApplyDefaults.
func DefaultConfig() Config {
	return Config{
		Backend: BackendSQLite,
		Orphans: OrphansDrop,
		Icon:    "📄",
	}
}

// ApplyDefaults fills missing fields and validates enumerations.
func (c *Config) ApplyDefaults() error {
	defaults := DefaultConfig()
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.Orphans == "" {
		c.Orphans = defaults.Orphans
	}
	if c.Icon == "" {
		c.Icon = defaults.Icon
	}

	switch c.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("invalid backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendJSON)
	}
	switch c.Orphans {
	case OrphansDrop, OrphansPromote:
	default:
		return fmt.Errorf("invalid orphans mode %q (want %s or %s)", c.Orphans, OrphansDrop, OrphansPromote)
	}

	if c.DataPath == "" {
		path, err := DefaultDataPath(c.Backend)
		if err != nil {
			return err
		}
		c.DataPath = path
	}
	return nil
}

// LoadConfig reads config from the YAML file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			if err := config.ApplyDefaults(); err != nil {
				return nil, err
			}
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := config.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &config, nil
}

// SaveConfig writes config to the YAML file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// configDir returns ~/.config/nt.
func configDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nt"), nil
}

// DefaultConfigFilePath returns the default config path: ~/.config/nt/config.yaml
func DefaultConfigFilePath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultDataPath returns the default data file for a backend:
// ~/.config/nt/notes.db or ~/.config/nt/notes.json
func DefaultDataPath(backend string) (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	if backend == BackendJSON {
		return filepath.Join(dir, "notes.json"), nil
	}
	return filepath.Join(dir, "notes.db"), nil
}
