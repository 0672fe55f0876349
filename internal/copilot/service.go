// Package copilot adapts the Copilot SDK to the llm.Service interface. The
// SDK client is long-lived, so Start/Stop manage its lifecycle and in-flight
// generations are drained before shutdown.
package copilot

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	copilot "github.com/github/copilot-sdk/go"

	"prreview/internal/apierror"
)

// Service manages the Copilot SDK client lifecycle.
type Service struct {
	client  *copilot.Client
	model   string
	mu      sync.Mutex
	wg      sync.WaitGroup
	started bool
}

// NewService creates a new Copilot provider for the given model.
func NewService(model string) *Service {
	if model == "" {
		model = "gpt-5-mini"
	}
	return &Service{
		client: copilot.NewClient(nil),
		model:  model,
	}
}

// Start initializes the Copilot client.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if err := s.client.Start(); err != nil {
		return fmt.Errorf("start copilot client: %w", err)
	}

	s.started = true
	return nil
}

// Stop drains in-flight generations and shuts down the client.
func (s *Service) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}

	s.started = false
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.client.Stop()
	s.mu.Unlock()
	return nil
}

// GenerateText sends a prompt through a fresh Copilot session and returns
// the assembled response. The SDK has no request-scoped context, so ctx only
// gates entry.
func (s *Service) GenerateText(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return "", apierror.New("copilot", 0, fmt.Errorf("service not started"))
	}
	s.wg.Add(1)
	s.mu.Unlock()
	defer s.wg.Done()

	session, err := s.client.CreateSession(&copilot.SessionConfig{
		Model:     s.model,
		Streaming: true,
	})
	if err != nil {
		return "", apierror.New("copilot", 0, fmt.Errorf("create session: %w", err))
	}

	var responseMu sync.Mutex
	var responseBuffer bytes.Buffer
	session.On(func(event copilot.SessionEvent) {
		if event.Type == "assistant.message_delta" && event.Data.DeltaContent != nil {
			responseMu.Lock()
			responseBuffer.WriteString(*event.Data.DeltaContent)
			responseMu.Unlock()
		}
	})

	if _, err := session.SendAndWait(copilot.MessageOptions{Prompt: prompt}, 0); err != nil {
		return "", apierror.New("copilot", 0, fmt.Errorf("send prompt: %w", err))
	}

	responseMu.Lock()
	out := strings.TrimSpace(responseBuffer.String())
	responseMu.Unlock()

	return out, nil
}
