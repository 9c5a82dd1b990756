// Package config loads the jotlist TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/dori/jotlist/internal/view"
)

// Config represents config.toml.
type Config struct {
	// DataDir holds the database, lock and log files.
	DataDir string `toml:"data_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Theme names the TUI color theme.
	Theme string `toml:"theme"`

	View View `toml:"view"`
}

// View holds the initial list controls.
type View struct {
	SortBy    string `toml:"sort_by"`
	SortOrder string `toml:"sort_order"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	dataDir := ".jotlist"
	if err == nil {
		dataDir = filepath.Join(home, ".local", "share", "jotlist")
	}
	opts := view.DefaultOptions()
	return &Config{
		DataDir:  dataDir,
		LogLevel: "info",
		Theme:    "nord",
		View: View{
			SortBy:    string(opts.SortBy),
			SortOrder: string(opts.Order),
		},
	}
}

// DefaultPath returns ~/.config/jotlist/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "jotlist", "config.toml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	cfg.DataDir = expandHome(strings.TrimSpace(cfg.DataDir))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is empty")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if _, err := view.ParseSortKey(c.View.SortBy); err != nil {
		return fmt.Errorf("view.sort_by: %w", err)
	}
	if _, err := view.ParseSortOrder(c.View.SortOrder); err != nil {
		return fmt.Errorf("view.sort_order: %w", err)
	}
	return nil
}

// ViewOptions returns the configured initial list controls.
func (c *Config) ViewOptions() view.Options {
	opts := view.DefaultOptions()
	if k, err := view.ParseSortKey(c.View.SortBy); err == nil {
		opts.SortBy = k
	}
	if o, err := view.ParseSortOrder(c.View.SortOrder); err == nil {
		opts.Order = o
	}
	return opts
}

// DBPath returns the database file path inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "jotlist.db")
}

// LogPath returns the log file path inside DataDir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "jotlist.log")
}

// LockPath returns the lock file path inside DataDir.
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "jotlist.lock")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
