package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"prreview/internal/apierror"
	"prreview/internal/diff"
	"prreview/internal/review"
)

// ReviewRequest is the body of POST /api/review.
type ReviewRequest struct {
	Owner       string `json:"owner" binding:"required"`
	Repo        string `json:"repo" binding:"required"`
	PRNumber    int    `json:"pr_number" binding:"required"`
	PostComment bool   `json:"post_comment"`
}

// ReviewResponse is the response envelope for POST /api/review.
type ReviewResponse struct {
	Status        string               `json:"status"`
	Message       string               `json:"message"`
	Review        *review.ReviewReport `json:"review,omitempty"`
	CommentPosted bool                 `json:"comment_posted"`
}

// Review handles POST /api/review. The pipeline runs synchronously; the
// response carries the full report or a single top-level error.
func (h *Handler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ReviewResponse{
			Status:  "error",
			Message: "owner, repo and pr_number are required",
		})
		return
	}

	result, err := h.reviewService.ReviewPR(c.Request.Context(), review.ReviewRequest{
		Owner:       req.Owner,
		Repo:        req.Repo,
		PRNumber:    req.PRNumber,
		PostComment: req.PostComment,
	})
	if err != nil {
		log.Printf("review failed for %s/%s#%d: %v", req.Owner, req.Repo, req.PRNumber, err)
		c.JSON(statusFor(err), ReviewResponse{
			Status:  "error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ReviewResponse{
		Status:        "success",
		Message:       fmt.Sprintf("Successfully reviewed PR #%d", req.PRNumber),
		Review:        result.Report,
		CommentPosted: result.CommentPosted,
	})
}

// statusFor maps the error taxonomy onto HTTP codes: malformed diffs are the
// caller's data problem, upstream API failures are a bad gateway, anything
// else is internal.
func statusFor(err error) int {
	var parseErr *diff.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusBadRequest
	}
	var svcErr *apierror.ServiceError
	if errors.As(err, &svcErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
