// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Behavior
	APIKey    string `json:"api_key,omitempty"`    // Gemini API key
	Verbose   bool   `json:"verbose,omitempty"`    // Print detailed debug information
	OutputDir string `json:"output_dir,omitempty"` // Directory for exported session logs

	// Limits
	AskFinishAfter int `json:"ask_finish_after,omitempty"` // Turn number for the finish reminder
	HardMaxTurns   int `json:"hard_max_turns,omitempty"`   // Turn number forcing session end

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.AskFinishAfter < 0 {
		return fmt.Errorf("config error: 'ask_finish_after' must be non-negative")
	}
	if c.HardMaxTurns < 0 {
		return fmt.Errorf("config error: 'hard_max_turns' must be non-negative")
	}
	if c.AskFinishAfter > 0 && c.HardMaxTurns > 0 && c.AskFinishAfter > c.HardMaxTurns {
		return fmt.Errorf("config error: 'ask_finish_after' must not exceed 'hard_max_turns'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.AskFinishAfter == 0 {
		result.AskFinishAfter = defaults.AskFinishAfter
	}
	if result.HardMaxTurns == 0 {
		result.HardMaxTurns = defaults.HardMaxTurns
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
