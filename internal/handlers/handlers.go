// Package handlers contains the gin HTTP handlers for the review API.
package handlers

import (
	"context"

	"prreview/internal/review"
)

// ReviewService runs the review pipeline for one PR.
type ReviewService interface {
	ReviewPR(ctx context.Context, req review.ReviewRequest) (*review.ReviewResult, error)
}

// Handler manages HTTP request handlers.
type Handler struct {
	reviewService ReviewService
}

// NewHandler creates a new handler instance.
func NewHandler(reviewSvc ReviewService) *Handler {
	return &Handler{reviewService: reviewSvc}
}
