package models

import (
	"os"
	"strconv"
	"time"
)

// AIConfig holds AI service configuration for the enrichment client
type AIConfig struct {
	OpenAIKey     string
	OpenAIModel   string
	SystemContext string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
	BaseURL       string // overridable for tests
}

// DefaultAIConfig returns sensible defaults for AI configuration
func DefaultAIConfig() *AIConfig {
	config := &AIConfig{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("LLM_MODEL"),
		SystemContext: "You are AEON, a behavioral interview analyst for candidate assessment.",
		MaxTokens:     500,
		Temperature:   0.7,
		Timeout:       20 * time.Second,
	}
	if config.OpenAIModel == "" {
		config.OpenAIModel = "gpt-4o-mini"
	}

	if maxTokensStr := os.Getenv("LLM_MAX_TOKENS"); maxTokensStr != "" {
		if maxTokens, err := strconv.Atoi(maxTokensStr); err == nil {
			config.MaxTokens = maxTokens
		}
	}

	if tempStr := os.Getenv("LLM_TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 64); err == nil {
			config.Temperature = temp
		}
	}

	return config
}

// Enabled reports whether an API key is configured for enrichment
func (c *AIConfig) Enabled() bool {
	return c != nil && c.OpenAIKey != ""
}
