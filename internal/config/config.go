// Package config loads process-wide configuration from the environment once
// at startup. The resulting Config is immutable and passed explicitly to
// each constructor.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	GitHubToken string

	LLMProvider   string // "gemini" (default), "openai", "copilot"
	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	CopilotModel  string
	LLMTimeout    time.Duration

	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// ValidationError reports a missing or invalid configuration value detected
// at startup.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:     envOr("PORT", "8080"),
		GinMode:  envOr("GIN_MODE", "release"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		GitHubToken: os.Getenv("GITHUB_TOKEN"),

		LLMProvider:   envOr("LLM_PROVIDER", "gemini"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   envOr("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   envOr("OPENAI_MODEL", "gpt-4o"),
		CopilotModel:  envOr("COPILOT_MODEL", "gpt-5-mini"),
		LLMTimeout:    durationOr("LLM_TIMEOUT", 60*time.Second),

		ShutdownTimeout: 10 * time.Second,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    120 * time.Second,
		IdleTimeout:     60 * time.Second,
	}
}

// Validate checks that the credentials the selected providers need are
// present. Called once at startup; a failure is fatal.
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return &ValidationError{Field: "GITHUB_TOKEN", Reason: "required"}
	}

	switch c.LLMProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return &ValidationError{Field: "GEMINI_API_KEY", Reason: "required when LLM_PROVIDER=gemini"}
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return &ValidationError{Field: "OPENAI_API_KEY", Reason: "required when LLM_PROVIDER=openai"}
		}
	case "copilot":
		// The Copilot SDK authenticates via its own CLI session.
	default:
		return &ValidationError{Field: "LLM_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", c.LLMProvider)}
	}

	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
