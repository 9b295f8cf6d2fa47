package config

import (
	"os"
	"strconv"
	"time"

	"aeon/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	AI       AIConfig
	Database DatabaseConfig
	Data     DataConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SessionConfig holds session lifecycle settings
type SessionConfig struct {
	TTL time.Duration
}

// AIConfig holds AI/LLM related settings
type AIConfig struct {
	OpenAIKey     string
	OpenAIModel   string
	SystemContext string
	MaxTokens     int
	Temperature   float64
	Timeout       time.Duration
}

// DatabaseConfig holds the optional audit ledger database settings.
// Session state itself is always held in process memory; only the
// audit trail is persisted when a DATABASE_URL is configured.
type DatabaseConfig struct {
	URL string
}

// DataConfig holds data input settings
type DataConfig struct {
	QuestionsFile string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:   loadServerConfig(),
		Session:  loadSessionConfig(),
		AI:       loadAIConfig(),
		Database: DatabaseConfig{URL: getEnvOrDefault("DATABASE_URL", "")},
		Data:     DataConfig{QuestionsFile: getEnvOrDefault("QUESTIONS_FILE", "")},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadSessionConfig() SessionConfig {
	return SessionConfig{
		TTL: getEnvDurationOrDefault("SESSION_TTL", time.Hour),
	}
}

func loadAIConfig() AIConfig {
	return AIConfig{
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		SystemContext: getEnvOrDefault("LLM_SYSTEM_CONTEXT", "You are AEON, a behavioral interview analyst for candidate assessment."),
		MaxTokens:     getEnvIntOrDefault("LLM_MAX_TOKENS", 500),
		Temperature:   getEnvFloatOrDefault("LLM_TEMPERATURE", 0.7),
		Timeout:       getEnvDurationOrDefault("LLM_TIMEOUT", 20*time.Second),
	}
}

func validateConfig(config *Config) error {
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.AI.Timeout <= 0 {
		return errors.ConfigInvalid("LLM_TIMEOUT must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
