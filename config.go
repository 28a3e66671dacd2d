// Copyright 2026 CampusOps Ltd.
// Licensed under Apache 2.0, see LICENCE file for details.

package classql

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails.
var ErrConfigValidation = errors.New("configuration validation failed")

const defaultTable = "classes"

// Config is the database-layer configuration handed to [Open]. The compiler
// core never reads it; it only names the file-backed store and the table the
// generated fragments run against.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
}

// DatabaseConfig locates the schedule database.
type DatabaseConfig struct {
	// Path is the SQLite database file.
	Path string `yaml:"path"`
	// Table is the schedule table. It must be a plain identifier since it
	// is interpolated into the query text.
	Table string `yaml:"table"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:  "classes.db",
			Table: defaultTable,
		},
	}
}

// LoadConfig reads the YAML configuration file at path, falling back to
// defaults for unset values. A .env file in the working directory is loaded
// first, and the CLASSQL_DB_PATH environment variable overrides the
// configured database path.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists (ignore errors if it doesn't).
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if cfg.Database.Table == "" {
			cfg.Database.Table = defaultTable
		}
	}

	if env := os.Getenv("CLASSQL_DB_PATH"); env != "" {
		cfg.Database.Path = env
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tablePattern admits plain SQL identifiers only.
var tablePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validate checks the configuration before it reaches the database layer.
// The table name in particular must be a plain identifier because it is
// spliced into query text, unlike filter literals which are always bound or
// escaped.
func (cfg *Config) validate() error {
	if cfg == nil {
		return fmt.Errorf("%w: nil configuration", ErrConfigValidation)
	}
	if cfg.Database.Path == "" {
		return fmt.Errorf("%w: database path is empty", ErrConfigValidation)
	}
	if !tablePattern.MatchString(cfg.Database.Table) {
		return fmt.Errorf("%w: invalid table name %q", ErrConfigValidation, cfg.Database.Table)
	}
	return nil
}
