// Package config loads service configuration from an optional YAML file with
// environment variable overrides so main stays lean.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Server captures service level configuration.
type Server struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// Owner is the initial contract owner principal. A persisted ledger
	// snapshot takes precedence over this value.
	Owner string `yaml:"owner"`
	// DBPath is the SQLite ledger path. Empty means memory-only operation.
	DBPath string `yaml:"db_path"`
	// LogFormat selects "text" or "json" log output.
	LogFormat string `yaml:"log_format"`
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), then applies environment overrides and defaults.
func Load(path string) (Server, error) {
	var cfg Server
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return Server{}, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Server{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if v := os.Getenv("ORGANLEDGER_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("ORGANLEDGER_OWNER"); v != "" {
		cfg.Owner = v
	}
	if v := os.Getenv("ORGANLEDGER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("ORGANLEDGER_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}

	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	return cfg, nil
}

// FromEnv builds a Server config from environment variables alone.
func FromEnv() (Server, error) {
	return Load(os.Getenv("ORGANLEDGER_CONFIG"))
}
