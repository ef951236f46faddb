package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	// Create temp config file
	content := `{
		"api_key": "test-key",
		"output_dir": "logs",
		"ask_finish_after": 8,
		"hard_max_turns": 12,
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "logs", cfg.OutputDir)
	assert.Equal(t, 8, cfg.AskFinishAfter)
	assert.Equal(t, 12, cfg.HardMaxTurns)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_NegativeValues(t *testing.T) {
	cfg := &Config{
		AskFinishAfter: -1,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ask_finish_after")
}

func TestValidate_ReminderAfterHardLimit(t *testing.T) {
	cfg := &Config{
		AskFinishAfter: 20,
		HardMaxTurns:   15,
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "must not exceed")
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		APIKey:         "key",
		AskFinishAfter: 10,
		HardMaxTurns:   15,
	}

	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIKey:         "default-key",
		OutputDir:      "outputs",
		AskFinishAfter: 10,
		HardMaxTurns:   15,
	}

	partial := Config{
		APIKey:       "custom-key",
		HardMaxTurns: 20,
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "custom-key", merged.APIKey)
	assert.Equal(t, 20, merged.HardMaxTurns)

	// Default values should fill in empty fields
	assert.Equal(t, "outputs", merged.OutputDir)
	assert.Equal(t, 10, merged.AskFinishAfter)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{
		APIKey:    "key",
		OutputDir: "logs",
	}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "key", merged.APIKey)
	assert.Equal(t, "logs", merged.OutputDir)
}
