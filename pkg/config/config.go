/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/deckcode/pkg/logging"
)

// Config represents the deckcode configuration
type Config struct {
	Logging Logging `yaml:"logging"`
	Output  Output  `yaml:"output"`
	Metrics Metrics `yaml:"metrics"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Output controls how commands print results
type Output struct {
	// Format is table, json or yaml.
	Format string `yaml:"format"`
	// ChunkSize inserts a separator every ChunkSize characters of a printed
	// deck code. Zero disables it.
	ChunkSize int `yaml:"chunk_size"`
}

// Metrics contains metrics export configuration
type Metrics struct {
	// Textfile is where metrics are written after each command, in the
	// Prometheus text format. Empty disables the export.
	Textfile string `yaml:"textfile"`
}

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Logging: Logging{
			Level:  "info",
			Format: logging.FormatText,
		},
		Output: Output{
			Format:    OutputTable,
			ChunkSize: 0,
		},
	}
}

// Validate checks that every field holds a supported value
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	switch c.Logging.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("logging.format: must be %s or %s, got %q", logging.FormatText, logging.FormatJSON, c.Logging.Format))
	}

	if err := ValidateOutputFormat(c.Output.Format); err != nil {
		errs = append(errs, fmt.Errorf("output.format: %w", err))
	}
	if c.Output.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("output.chunk_size: must not be negative, got %d", c.Output.ChunkSize))
	}

	return errors.Join(errs...)
}

// ValidateOutputFormat checks an output format name
func ValidateOutputFormat(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("must be %s, %s or %s, got %q", OutputTable, OutputJSON, OutputYAML, format)
	}
}

// LoadConfig loads configuration from the specified path. Keys missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

// Resolve loads the configuration for a command. An explicit path must
// exist. With no explicit path the default location is tried, and a
// missing file there yields the defaults.
func Resolve(explicitPath string) (*Config, error) {
	if explicitPath != "" {
		return LoadConfig(explicitPath)
	}

	defaultPath := GetDefaultConfigPath()
	if !ConfigExists(defaultPath) {
		return DefaultConfig(), nil
	}
	return LoadConfig(defaultPath)
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./deckcode.yaml"
	}

	// For Linux/macOS, use ~/.config/deckcode/config.yaml
	configDir := filepath.Join(homeDir, ".config", "deckcode")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
