package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("LLM_TIMEOUT", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LLMProvider != "gemini" {
		t.Errorf("LLMProvider = %q, want gemini", cfg.LLMProvider)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("GeminiModel = %q", cfg.GeminiModel)
	}
	if cfg.LLMTimeout != 60*time.Second {
		t.Errorf("LLMTimeout = %v, want 60s", cfg.LLMTimeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_TIMEOUT", "30s")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.LLMProvider != "openai" {
		t.Errorf("LLMProvider = %q, want openai", cfg.LLMProvider)
	}
	if cfg.LLMTimeout != 30*time.Second {
		t.Errorf("LLMTimeout = %v, want 30s", cfg.LLMTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantField string
	}{
		{
			name:      "missing github token",
			cfg:       Config{LLMProvider: "gemini", GeminiAPIKey: "k"},
			wantField: "GITHUB_TOKEN",
		},
		{
			name:      "missing gemini key",
			cfg:       Config{GitHubToken: "t", LLMProvider: "gemini"},
			wantField: "GEMINI_API_KEY",
		},
		{
			name:      "missing openai key",
			cfg:       Config{GitHubToken: "t", LLMProvider: "openai"},
			wantField: "OPENAI_API_KEY",
		},
		{
			name:      "unknown provider",
			cfg:       Config{GitHubToken: "t", LLMProvider: "llama-in-a-box"},
			wantField: "LLM_PROVIDER",
		},
		{
			name: "valid gemini",
			cfg:  Config{GitHubToken: "t", LLMProvider: "gemini", GeminiAPIKey: "k"},
		},
		{
			name: "valid copilot needs no key",
			cfg:  Config{GitHubToken: "t", LLMProvider: "copilot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}
