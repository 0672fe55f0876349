// Package review orchestrates the full PR review: fetch, parse, agent
// pipeline, aggregation, and optional comment posting.
package review

import (
	"context"
	"fmt"
	"log"

	"prreview/internal/agents"
	"prreview/internal/diff"
	ghclient "prreview/internal/github"
	"prreview/internal/llm"
)

// GitHubClient defines the GitHub operations needed for a review.
type GitHubClient interface {
	GetPullRequest(ctx context.Context, owner, repo string, prNumber int) (*ghclient.PullRequest, error)
	GetPRDiff(ctx context.Context, owner, repo string, prNumber int) (string, error)
	CreatePRComment(ctx context.Context, owner, repo string, prNumber int, body string) error
}

// Service runs the review pipeline for one PR at a time. It holds no
// per-request state, so one Service serves concurrent requests.
type Service struct {
	githubClient GitHubClient
	pipeline     *agents.Pipeline
}

// NewService creates a review service over the given collaborators. With
// debug enabled, the agent pipeline logs per-agent progress.
func NewService(gh GitHubClient, provider llm.TextGenerator, debug bool) *Service {
	return &Service{
		githubClient: gh,
		pipeline:     agents.NewPipeline(provider, debug),
	}
}

// ReviewPR performs a complete review of a pull request. Any failure at any
// stage aborts the rest of the pipeline; partial results are never returned.
func (s *Service) ReviewPR(ctx context.Context, req ReviewRequest) (*ReviewResult, error) {
	log.Printf("Starting review for %s/%s PR #%d", req.Owner, req.Repo, req.PRNumber)

	pr, err := s.githubClient.GetPullRequest(ctx, req.Owner, req.Repo, req.PRNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch pr metadata: %w", err)
	}

	rawDiff, err := s.githubClient.GetPRDiff(ctx, req.Owner, req.Repo, req.PRNumber)
	if err != nil {
		return nil, fmt.Errorf("fetch pr diff: %w", err)
	}

	files, err := diff.Parse(rawDiff)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	if len(files) == 0 {
		log.Printf("PR #%d has no parsed changes, skipping agents", req.PRNumber)
		return &ReviewResult{
			Report: &ReviewReport{
				Summary:          "No code changes detected",
				Files:            map[string][]agents.Issue{},
				IssuesBySeverity: map[string]int{agents.SeverityHigh: 0, agents.SeverityMedium: 0, agents.SeverityLow: 0},
				IssuesByType:     map[string]int{agents.TypeLogic: 0, agents.TypeSecurity: 0, agents.TypePerformance: 0, agents.TypeStyle: 0},
				Metadata:         ReportMetadata{PRNumber: pr.Number, PRTitle: pr.Title, PRAuthor: pr.Author},
			},
		}, nil
	}

	results, err := s.pipeline.Run(ctx, files, agents.PRContext{
		Number:    pr.Number,
		Title:     pr.Title,
		Body:      pr.Body,
		Author:    pr.Author,
		Additions: pr.Additions,
		Deletions: pr.Deletions,
	})
	if err != nil {
		return nil, fmt.Errorf("run agents: %w", err)
	}

	report := Aggregate(files, results, pr)
	log.Printf("PR #%d: %d files analyzed, %d issues found", req.PRNumber, report.TotalFilesAnalyzed, report.TotalIssuesFound)

	commentPosted := false
	if req.PostComment {
		body := FormatComment(report)
		if err := s.githubClient.CreatePRComment(ctx, req.Owner, req.Repo, req.PRNumber, body); err != nil {
			return nil, fmt.Errorf("post review comment: %w", err)
		}
		commentPosted = true
		log.Printf("PR #%d: review comment posted", req.PRNumber)
	}

	return &ReviewResult{Report: report, CommentPosted: commentPosted}, nil
}
