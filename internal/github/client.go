// Package github wraps the GitHub API operations the review pipeline needs:
// PR metadata, the raw unified diff, and comment posting.
package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v82/github"

	"prreview/internal/apierror"
)

// Client provides GitHub API operations.
type Client struct {
	client *github.Client
	token  string
}

// NewClient creates a new GitHub API client authenticated with the given
// token.
func NewClient(token string) *Client {
	httpClient := &http.Client{
		Transport: &tokenTransport{token: token},
	}

	return &Client{
		client: github.NewClient(httpClient),
		token:  token,
	}
}

type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "token "+t.token)
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req)
}

// PullRequest holds the PR metadata threaded into agent prompts and the
// report's metadata block.
type PullRequest struct {
	Number       int
	Title        string
	Body         string
	Author       string
	State        string
	HeadSHA      string
	HeadRef      string
	BaseRef      string
	Additions    int
	Deletions    int
	ChangedFiles int
}

// GetPullRequest fetches PR metadata.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, prNumber int) (*PullRequest, error) {
	pr, resp, err := c.client.PullRequests.Get(ctx, owner, repo, prNumber)
	if err != nil {
		return nil, apierror.New("github", statusCode(resp), fmt.Errorf("get pr: %w", err))
	}

	return &PullRequest{
		Number:       pr.GetNumber(),
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		Author:       pr.GetUser().GetLogin(),
		State:        pr.GetState(),
		HeadSHA:      pr.GetHead().GetSHA(),
		HeadRef:      pr.GetHead().GetRef(),
		BaseRef:      pr.GetBase().GetRef(),
		Additions:    pr.GetAdditions(),
		Deletions:    pr.GetDeletions(),
		ChangedFiles: pr.GetChangedFiles(),
	}, nil
}

// GetPRDiff fetches the combined unified diff for a PR.
func (c *Client) GetPRDiff(ctx context.Context, owner, repo string, prNumber int) (string, error) {
	raw, resp, err := c.client.PullRequests.GetRaw(ctx, owner, repo, prNumber, github.RawOptions{Type: github.Diff})
	if err != nil {
		return "", apierror.New("github", statusCode(resp), fmt.Errorf("get pr diff: %w", err))
	}
	return raw, nil
}

// CreatePRComment posts a comment on a PR.
func (c *Client) CreatePRComment(ctx context.Context, owner, repo string, prNumber int, body string) error {
	_, resp, err := c.client.Issues.CreateComment(ctx, owner, repo, prNumber, &github.IssueComment{
		Body: github.Ptr(body),
	})
	if err != nil {
		return apierror.New("github", statusCode(resp), fmt.Errorf("create pr comment: %w", err))
	}
	return nil
}

func statusCode(resp *github.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}
