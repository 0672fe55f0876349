// Package llm defines the inference provider interface and its HTTP-backed
// implementations. A provider takes a prompt and returns raw model text; all
// prompt construction and response interpretation lives with the callers.
package llm

import "context"

// TextGenerator provides basic text generation capability.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service is the full provider interface with lifecycle management. Start
// and Stop are no-ops for stateless HTTP providers; the Copilot provider
// uses them to manage its SDK client.
type Service interface {
	TextGenerator
	Start() error
	Stop() error
}
