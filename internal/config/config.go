// Package config holds application configuration read from environment
// variables, optionally overlaid by a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings of the command-line application.
type Config struct {
	// DataDir overrides the platform data directory for the game database.
	DataDir string `yaml:"data_dir"`
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// LogFormat is the zap encoding: json or console.
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration with sensible defaults. A YAML file named by
// CHESSCORE_CONFIG is applied first; CHESSCORE_DATA_DIR and
// CHESSCORE_LOG_LEVEL override it.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:  "info",
		LogFormat: "console",
	}

	if path := os.Getenv("CHESSCORE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if dir := os.Getenv("CHESSCORE_DATA_DIR"); dir != "" {
		cfg.DataDir = dir
	}
	if level := os.Getenv("CHESSCORE_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv("CHESSCORE_LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}
