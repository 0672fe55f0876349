package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"prreview/internal/config"
	"prreview/internal/copilot"
	"prreview/internal/github"
	"prreview/internal/handlers"
	"prreview/internal/llm"
	"prreview/internal/review"
	"prreview/internal/server"
)

func main() {
	// Load and validate configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize the inference provider based on configuration
	var llmSvc llm.Service
	switch cfg.LLMProvider {
	case "openai":
		log.Printf("Using OpenAI provider (model: %s)", cfg.OpenAIModel)
		llmSvc = llm.NewOpenAIProvider(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.LLMTimeout,
		})
	case "copilot":
		log.Printf("Using Copilot provider (model: %s)", cfg.CopilotModel)
		llmSvc = copilot.NewService(cfg.CopilotModel)
	default:
		log.Printf("Using Gemini provider (model: %s)", cfg.GeminiModel)
		llmSvc = llm.NewGeminiProvider(llm.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			Timeout: cfg.LLMTimeout,
		})
	}

	if err := llmSvc.Start(); err != nil {
		log.Fatalf("Failed to start LLM provider: %v", err)
	}
	defer llmSvc.Stop()

	// Initialize GitHub client and the review service
	githubClient := github.NewClient(cfg.GitHubToken)
	reviewSvc := review.NewService(githubClient, llmSvc, cfg.LogLevel == "debug")

	// Setup HTTP server
	srv := server.NewServer(cfg)
	handler := handlers.NewHandler(reviewSvc)

	// Register routes
	srv.Router().GET("/health", handler.Health)
	srv.Router().POST("/api/review", handler.Review)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Println("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			log.Printf("Server error: %v", err)
		}
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
