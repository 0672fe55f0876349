package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"prreview/internal/apierror"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GeminiProvider calls the Gemini generateContent REST API.
type GeminiProvider struct {
	apiKey  string
	baseURL string
	model   string
	client  *resty.Client
}

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	APIKey  string
	BaseURL string // override for tests; defaults to the public endpoint
	Model   string // defaults to gemini-1.5-flash
	Timeout time.Duration
}

// NewGeminiProvider creates a Gemini-backed provider.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &GeminiProvider{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		model:   model,
		client:  client,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText sends a prompt to Gemini and returns the model's text.
func (p *GeminiProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.3,
			TopP:            0.95,
			TopK:            40,
			MaxOutputTokens: 8192,
		},
	}

	var (
		result geminiResponse
		apiErr geminiError
	)

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("key", p.apiKey).
		SetBody(reqBody).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model))
	if err != nil {
		return "", apierror.New("gemini", 0, fmt.Errorf("send request: %w", err))
	}
	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", apierror.New("gemini", resp.StatusCode(), fmt.Errorf("%s", msg))
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", apierror.New("gemini", resp.StatusCode(), fmt.Errorf("no candidates returned"))
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}

// Start is a no-op; the provider holds no persistent connection.
func (p *GeminiProvider) Start() error { return nil }

// Stop is a no-op.
func (p *GeminiProvider) Stop() error { return nil }
