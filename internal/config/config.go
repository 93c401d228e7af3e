// Package config loads Refundesk settings from an optional YAML file
// with environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all settings for the application.
type Config struct {
	// APIURL is the base address of the back-office API.
	APIURL string `yaml:"api_url"`
	// StateDir holds the durable session keys, exported reports and logs.
	StateDir string `yaml:"state_dir"`
	// LogFile is where structured logs go; the TUI owns the terminal,
	// so logging to stderr is not an option. Defaults into StateDir.
	LogFile string `yaml:"log_file"`
	// Debug lowers the log level to debug.
	Debug bool `yaml:"debug"`
}

// DefaultPath returns ~/.refundesk/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".refundesk", "config.yaml"), nil
}

// Load reads the config file at path (a missing file is fine), applies
// environment overrides and fills in defaults. REFUNDESK_API_URL always
// beats the file value.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// No config file; env and defaults carry everything.
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if v := os.Getenv("REFUNDESK_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("REFUNDESK_DEBUG"); v == "1" || v == "true" {
		cfg.Debug = true
	}

	if cfg.APIURL == "" {
		cfg.APIURL = "http://localhost:3000"
	}
	if cfg.StateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		cfg.StateDir = filepath.Join(home, ".refundesk")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.StateDir, "refundesk.log")
	}
	return cfg, nil
}
