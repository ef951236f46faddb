// Package llm provides centralized LLM configuration and client abstractions.
// This package enables easy switching between model tiers and future multi-provider support.
package llm

import (
	"fmt"
	"os"
	"strconv"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for cheap routing decisions: should-we-even-ask classification
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction: profile intake, verdicts, interview turns
	TierStandard ModelTier = "standard"
	// TierAdvanced is for the final report synthesis (long context, nuanced judgment)
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: 0.2,
	}
}

// ConfigFromEnv builds a configuration from environment variables, starting
// from the defaults. Recognized variables: LLM_PROVIDER, LLM_MODEL (all
// tiers), LLM_MODEL_LITE / LLM_MODEL_STANDARD / LLM_MODEL_ADVANCED,
// LLM_TEMPERATURE. An unknown provider is a startup error, not a per-turn
// condition.
func ConfigFromEnv() (*Config, error) {
	cfg := DefaultConfig()

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		switch Provider(provider) {
		case ProviderGemini:
			cfg.Provider = ProviderGemini
		default:
			return nil, fmt.Errorf("unknown LLM_PROVIDER: %q", provider)
		}
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		for tier := range cfg.Models {
			cfg.Models[tier] = model
		}
	}
	for tier, envVar := range map[ModelTier]string{
		TierLite:     "LLM_MODEL_LITE",
		TierStandard: "LLM_MODEL_STANDARD",
		TierAdvanced: "LLM_MODEL_ADVANCED",
	} {
		if model := os.Getenv(envVar); model != "" {
			cfg.Models[tier] = model
		}
	}

	if raw := os.Getenv("LLM_TEMPERATURE"); raw != "" {
		temp, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TEMPERATURE: %v", err)
		}
		cfg.Temperature = float32(temp)
	}

	return cfg, nil
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
