package review

import "prreview/internal/agents"

// ReviewRequest contains parameters for reviewing a PR.
type ReviewRequest struct {
	Owner       string
	Repo        string
	PRNumber    int
	PostComment bool
}

// ReviewResult contains the outcome of a PR review.
type ReviewResult struct {
	Report        *ReviewReport
	CommentPosted bool
}

// ReportMetadata describes the reviewed PR.
type ReportMetadata struct {
	PRNumber     int    `json:"pr_number"`
	PRTitle      string `json:"pr_title"`
	PRAuthor     string `json:"pr_author"`
	FilesChanged int    `json:"files_changed"`
	Additions    int    `json:"additions"`
	Deletions    int    `json:"deletions"`
}

// ReviewReport is the merged output of the whole agent pipeline. Counts are
// always consistent sums over Files.
type ReviewReport struct {
	Summary            string                    `json:"summary"`
	Files              map[string][]agents.Issue `json:"files"`
	TotalFilesAnalyzed int                       `json:"total_files_analyzed"`
	TotalIssuesFound   int                       `json:"total_issues_found"`
	IssuesBySeverity   map[string]int            `json:"issues_by_severity"`
	IssuesByType       map[string]int            `json:"issues_by_type"`
	Metadata           ReportMetadata            `json:"metadata"`

	// FileOrder records first-seen order of the keys in Files, for
	// deterministic comment rendering.
	FileOrder []string `json:"-"`
}
