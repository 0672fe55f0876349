package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"prreview/internal/apierror"
)

// OpenAIProvider calls any OpenAI-compatible chat completions API.
type OpenAIProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *resty.Client
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string // defaults to https://api.openai.com/v1
	Model   string // defaults to gpt-4o
	Timeout time.Duration
}

// NewOpenAIProvider creates an OpenAI-compatible provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &OpenAIProvider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message      openAIMessage `json:"message"`
		FinishReason string        `json:"finish_reason"`
	} `json:"choices"`
}

type openAIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateText sends a prompt as a single user message and returns the reply.
func (p *OpenAIProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := openAIRequest{
		Model:       p.model,
		Messages:    []openAIMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
		MaxTokens:   4096,
	}

	var (
		result openAIResponse
		apiErr openAIError
	)

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(reqBody).
		SetResult(&result).
		SetError(&apiErr).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return "", apierror.New("openai", 0, fmt.Errorf("send request: %w", err))
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", apierror.New("openai", resp.StatusCode(), fmt.Errorf("%s", msg))
	}

	if len(result.Choices) == 0 {
		return "", apierror.New("openai", resp.StatusCode(), fmt.Errorf("no response choices returned"))
	}

	return result.Choices[0].Message.Content, nil
}

// Start is a no-op; the provider holds no persistent connection.
func (p *OpenAIProvider) Start() error { return nil }

// Stop is a no-op.
func (p *OpenAIProvider) Stop() error { return nil }
