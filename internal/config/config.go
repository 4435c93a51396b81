// Package config loads and validates the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Scan           ScanDefaults `yaml:"scan"`
	ProtectedPaths []string     `yaml:"protected_paths"`
	ExcludeExts    []string     `yaml:"exclude_extensions"`
	Output         OutputConfig `yaml:"output"`
	Verbose        bool         `yaml:"verbose"`
}

// ScanDefaults holds the default scan options applied when flags are not set.
type ScanDefaults struct {
	Recursive bool `yaml:"recursive"`
	MaxDepth  int  `yaml:"max_depth"`
	Workers   int  `yaml:"workers"` // 0 = auto
}

// OutputConfig holds report rendering preferences.
type OutputConfig struct {
	Format  string `yaml:"format"` // summary, table, json, yaml
	NoColor bool   `yaml:"no_color"`
}

var validFormats = map[string]bool{
	"summary": true,
	"table":   true,
	"json":    true,
	"yaml":    true,
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "clearai", "config.yaml")
}

// Load loads configuration from a file. A missing file yields the default
// configuration rather than an error.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save writes the configuration to a file, creating parent directories as
// needed.
func (c *Config) Save(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the configuration for inconsistent values.
func (c *Config) Validate() error {
	if c.Scan.MaxDepth < 1 {
		return fmt.Errorf("scan.max_depth must be at least 1, got %d", c.Scan.MaxDepth)
	}
	if c.Scan.Workers < 0 {
		return fmt.Errorf("scan.workers must not be negative, got %d", c.Scan.Workers)
	}
	if c.Output.Format != "" && !validFormats[c.Output.Format] {
		return fmt.Errorf("output.format %q is not one of summary, table, json, yaml", c.Output.Format)
	}
	return nil
}
