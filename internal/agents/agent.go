// Package agents implements the five review roles as plain records: a role
// name, a prompt builder over the parsed diff, and an output parser. There
// is no hierarchy; the pipeline iterates a fixed ordered list.
package agents

import (
	"encoding/json"
	"strings"

	"prreview/internal/diff"
)

// Issue severity levels.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Issue types.
const (
	TypeLogic       = "logic"
	TypeSecurity    = "security"
	TypePerformance = "performance"
	TypeStyle       = "style"
)

// Issue is a single finding extracted from an agent's response.
type Issue struct {
	File       string `json:"file"`
	Line       int    `json:"line,omitempty"`
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
	Agent      string `json:"agent,omitempty"`
}

// PRContext carries PR metadata into prompts.
type PRContext struct {
	Number    int
	Title     string
	Body      string
	Author    string
	Additions int
	Deletions int
}

// Result is the tagged outcome of one agent run: either a structured issue
// list or the whole response as a free-text note attributed to the role.
type Result struct {
	Role       string
	Structured bool
	Issues     []Issue
	Note       string
	Raw        string
}

// Agent is a role-tagged prompt template plus an output parser.
type Agent struct {
	Role string
	// DefaultType is assigned to the fallback note when the response is not
	// parseable JSON.
	DefaultType string
	// BuildPrompt formats the role's prompt. priorOutput is the concatenated
	// raw output of all earlier agents in the pipeline.
	BuildPrompt func(files []diff.FileChange, pr PRContext, priorOutput string) string
	// Parse extracts the tagged result from the model's raw response.
	Parse func(response string) Result
}

type issuesEnvelope struct {
	Issues []Issue `json:"issues"`
}

// stripFences removes a surrounding markdown code fence, which models add
// despite instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseIssues attempts a structured parse of {"issues": [...]}; on failure
// the whole response becomes an unstructured note.
func parseIssues(role string, response string) Result {
	cleaned := stripFences(response)

	var env issuesEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err != nil {
		return Result{Role: role, Note: strings.TrimSpace(response), Raw: response}
	}

	issues := env.Issues
	for i := range issues {
		issues[i].Agent = role
	}
	return Result{Role: role, Structured: true, Issues: issues, Raw: response}
}

type summaryEnvelope struct {
	Summary string `json:"summary"`
}

// parseSummary attempts {"summary": "..."}; on failure the raw text is used
// as the summary.
func parseSummary(role string, response string) Result {
	cleaned := stripFences(response)

	var env summaryEnvelope
	if err := json.Unmarshal([]byte(cleaned), &env); err == nil && env.Summary != "" {
		return Result{Role: role, Structured: true, Note: env.Summary, Raw: response}
	}
	return Result{Role: role, Note: strings.TrimSpace(response), Raw: response}
}
