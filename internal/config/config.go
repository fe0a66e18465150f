package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds all cart configuration.
type Config struct {
	// DataDir is where the list data and log file live.
	DataDir string `yaml:"data_dir"`

	Storage StorageConfig `yaml:"storage"`

	// LogFile overrides the default log location (DataDir/cart.log).
	LogFile string `yaml:"log_file"`
}

// StorageConfig selects the key-value backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // file | sqlite
}

// baseDir is CART_CONFIG, or <user config dir>/cart.
func baseDir() string {
	if d := strings.TrimSpace(os.Getenv("CART_CONFIG")); d != "" {
		return d
	}
	ucd, err := os.UserConfigDir()
	if err != nil {
		// Degenerate environments (no HOME): fall back to the working dir.
		return ".cart"
	}
	return filepath.Join(ucd, "cart")
}

func Default() Config {
	return Config{
		DataDir: baseDir(),
		Storage: StorageConfig{Backend: BackendFile},
	}
}

// Load reads config.yaml from the config dir, falling back to defaults when
// absent, then applies environment overrides (CART_DATA_DIR,
// CART_STORAGE_BACKEND).
func Load() (Config, error) {
	cfg := Default()
	path := filepath.Join(baseDir(), "config.yaml")
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No config file is the common case.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if d := strings.TrimSpace(os.Getenv("CART_DATA_DIR")); d != "" {
		cfg.DataDir = d
	}
	if bk := strings.TrimSpace(os.Getenv("CART_STORAGE_BACKEND")); bk != "" {
		cfg.Storage.Backend = bk
	}
	if cfg.DataDir == "" {
		cfg.DataDir = baseDir()
	}

	switch cfg.Storage.Backend {
	case "", BackendFile:
		cfg.Storage.Backend = BackendFile
	case BackendSQLite:
	default:
		return Config{}, fmt.Errorf("unknown storage backend %q (want %s or %s)",
			cfg.Storage.Backend, BackendFile, BackendSQLite)
	}
	return cfg, nil
}

// DataFile is the JSON key-value file used by the file backend.
func (c Config) DataFile() string { return filepath.Join(c.DataDir, "cart.json") }

// SQLitePath is the database file used by the sqlite backend.
func (c Config) SQLitePath() string { return filepath.Join(c.DataDir, "cart.sqlite") }

// LogPath is where persistence failures get logged.
func (c Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "cart.log")
}
