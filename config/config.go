// Package config provides configuration loading and management for the
// pslspec CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete pslspec configuration.
type Config struct {
	Lint   LintConfig   `yaml:"lint"`
	Watch  WatchConfig  `yaml:"watch"`
	Output OutputConfig `yaml:"output"`
}

// LintConfig tunes the validation stage.
//
// Rule severities are deliberately not configurable: L-03/L-04 stay fixed at
// warning. Disabling a rule entirely is the supported escape hatch.
type LintConfig struct {
	// DisabledRules lists rule codes to skip (e.g. ["L-10"]).
	DisabledRules []string `yaml:"disabled_rules"`

	// Units overrides the recognized unit vocabulary for L-04
	// (empty = built-in default set).
	Units []string `yaml:"units"`

	// MaxEntryLength is the L-10 clarity threshold in characters.
	MaxEntryLength int `yaml:"max_entry_length"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before re-linting.
	DebounceDelay time.Duration `yaml:"debounce_delay"`

	// Extensions lists file extensions to watch.
	Extensions []string `yaml:"extensions"`
}

// OutputConfig tunes report rendering.
type OutputConfig struct {
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Lint: LintConfig{
			MaxEntryLength: 200,
		},
		Watch: WatchConfig{
			DebounceDelay: 500 * time.Millisecond,
			Extensions:    []string{".psl", ".txt"},
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Output.Format != "text" && c.Output.Format != "json" {
		return fmt.Errorf("output.format must be \"text\" or \"json\", got %q", c.Output.Format)
	}
	if c.Lint.MaxEntryLength < 0 {
		return fmt.Errorf("lint.max_entry_length must not be negative")
	}
	if c.Watch.DebounceDelay < 0 {
		return fmt.Errorf("watch.debounce_delay must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values).
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if len(other.Lint.DisabledRules) > 0 {
		c.Lint.DisabledRules = other.Lint.DisabledRules
	}
	if len(other.Lint.Units) > 0 {
		c.Lint.Units = other.Lint.Units
	}
	if other.Lint.MaxEntryLength != 0 {
		c.Lint.MaxEntryLength = other.Lint.MaxEntryLength
	}

	if other.Watch.DebounceDelay != 0 {
		c.Watch.DebounceDelay = other.Watch.DebounceDelay
	}
	if len(other.Watch.Extensions) > 0 {
		c.Watch.Extensions = other.Watch.Extensions
	}

	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}
}
