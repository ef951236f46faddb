package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/interview-coach/internal/session"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"], "run command should be registered")
	assert.True(t, names["serve"], "serve command should be registered")
	assert.True(t, names["check-links"], "check-links command should be registered")
}

func TestRunCommandFlags(t *testing.T) {
	for _, name := range []string{"config", "output-dir", "ask-finish-after", "hard-max-turns", "api-key", "verbose", "db-url"} {
		assert.NotNil(t, runCommand.Flags().Lookup(name), "run should define --%s", name)
	}
}

func TestServeCommandDefaults(t *testing.T) {
	port := serveCmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "8080", port.DefValue)

	outputDir := serveCmd.Flags().Lookup("output-dir")
	require.NotNil(t, outputDir)
	assert.Equal(t, session.DefaultOutputDir, outputDir.DefValue)
}
