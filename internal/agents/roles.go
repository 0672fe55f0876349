package agents

import (
	"fmt"
	"strings"

	"prreview/internal/diff"
)

// Role names, in pipeline order.
const (
	RoleReviewer       = "Code Reviewer"
	RoleSecurity       = "Security Auditor"
	RolePerformance    = "Performance Analyst"
	RoleSeniorEngineer = "Senior Engineer"
	RoleSummary        = "Summary"
)

const issueFormat = `Return JSON in this EXACT format:
{
  "issues": [
    {
      "file": "path/to/file",
      "line": 42,
      "type": "%s",
      "severity": "high|medium|low",
      "message": "Clear description of the issue",
      "suggestion": "How to fix it"
    }
  ]
}
Line numbers must reference NEW file line numbers of the added lines shown.
If there are no issues, return {"issues": []}.
Return ONLY valid JSON, no markdown, no backticks, no preamble.`

// writePRHeader renders the shared PR context block.
func writePRHeader(sb *strings.Builder, pr PRContext) {
	fmt.Fprintf(sb, "Pull Request #%d: %s\n", pr.Number, pr.Title)
	if pr.Author != "" {
		fmt.Fprintf(sb, "Author: @%s\n", pr.Author)
	}
	if pr.Body != "" {
		fmt.Fprintf(sb, "Description: %s\n", pr.Body)
	}
	sb.WriteString("\n")
}

// writeChangedCode renders the added lines of every file, annotated with
// their new-file line numbers.
func writeChangedCode(sb *strings.Builder, files []diff.FileChange) {
	for _, f := range files {
		added := f.AddedLines()
		if len(added) == 0 {
			continue
		}
		fmt.Fprintf(sb, "### File: %s (+%d -%d)\n", f.Path, f.Additions, f.Deletions)
		for _, l := range added {
			fmt.Fprintf(sb, "%d: %s\n", l.NewLine, l.Content)
		}
		sb.WriteString("\n")
	}
}

func writePriorOutput(sb *strings.Builder, priorOutput string) {
	if priorOutput == "" {
		return
	}
	sb.WriteString("\nFindings from earlier review stages (for context):\n")
	sb.WriteString(priorOutput)
	sb.WriteString("\n")
}

func reviewerPrompt(files []diff.FileChange, pr PRContext, priorOutput string) string {
	var sb strings.Builder
	sb.WriteString(`You are an expert code reviewer. Analyze the changed code for:
- Logic bugs and errors
- Potential runtime errors
- Code smells and readability issues
- Best practice violations

Use type "logic" for correctness problems and "style" for readability or convention issues.

`)
	writePRHeader(&sb, pr)
	writeChangedCode(&sb, files)
	writePriorOutput(&sb, priorOutput)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, issueFormat, "logic|style")
	return sb.String()
}

func securityPrompt(files []diff.FileChange, pr PRContext, priorOutput string) string {
	var sb strings.Builder
	sb.WriteString(`You are a security auditor. Analyze the changed code for:
- SQL injection vulnerabilities
- XSS vulnerabilities
- Authentication/authorization issues
- Insecure data handling
- Exposed secrets or credentials
- Unsafe API calls
- Path traversal vulnerabilities

`)
	writePRHeader(&sb, pr)
	writeChangedCode(&sb, files)
	writePriorOutput(&sb, priorOutput)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, issueFormat, "security")
	return sb.String()
}

func performancePrompt(files []diff.FileChange, pr PRContext, priorOutput string) string {
	var sb strings.Builder
	sb.WriteString(`You are a performance analyst. Analyze the changed code for:
- Inefficient algorithms (quadratic or worse)
- Unnecessary loops or iterations
- Memory leaks or excessive memory usage
- Blocking operations on hot paths
- Database N+1 queries
- Missing caching opportunities

`)
	writePRHeader(&sb, pr)
	writeChangedCode(&sb, files)
	writePriorOutput(&sb, priorOutput)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, issueFormat, "performance")
	return sb.String()
}

func seniorEngineerPrompt(files []diff.FileChange, pr PRContext, priorOutput string) string {
	var sb strings.Builder
	sb.WriteString(`You are a senior software engineer reviewing raw findings from multiple automated review agents.

Refine the findings below into clear, professional, actionable comments:
1. Prioritize the most critical issues
2. Rewrite messages in a professional, helpful tone
3. Ensure suggestions are specific and actionable
4. Drop false positives and low-value findings

`)
	writePRHeader(&sb, pr)
	writeChangedCode(&sb, files)
	writePriorOutput(&sb, priorOutput)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, issueFormat, "logic|security|performance|style")
	return sb.String()
}

func summaryPrompt(files []diff.FileChange, pr PRContext, priorOutput string) string {
	var sb strings.Builder
	sb.WriteString(`You are a senior software engineer concluding a pull request review. Write a comprehensive summary of the review with:
1. Overview: brief assessment of PR quality and scope
2. Key findings: the most important issues discovered
3. Recommendations: actionable next steps
4. Positive aspects: what is done well, if applicable

Use a professional, constructive tone. Format the summary as markdown.

`)
	writePRHeader(&sb, pr)

	sb.WriteString("Files changed:\n")
	for _, f := range files {
		fmt.Fprintf(&sb, "- %s (%s, +%d -%d)\n", f.Path, f.Status, f.Additions, f.Deletions)
	}
	writePriorOutput(&sb, priorOutput)
	sb.WriteString(`
Return JSON in this EXACT format:
{"summary": "markdown summary text"}
Return ONLY valid JSON, no markdown fences, no preamble.`)
	return sb.String()
}

// DefaultAgents returns the five agents in their fixed pipeline order:
// Reviewer, Security, Performance, SeniorEngineer, Summary. Later agents see
// the concatenated output of all earlier ones.
func DefaultAgents() []Agent {
	return []Agent{
		{
			Role:        RoleReviewer,
			DefaultType: TypeLogic,
			BuildPrompt: reviewerPrompt,
			Parse:       func(resp string) Result { return parseIssues(RoleReviewer, resp) },
		},
		{
			Role:        RoleSecurity,
			DefaultType: TypeSecurity,
			BuildPrompt: securityPrompt,
			Parse:       func(resp string) Result { return parseIssues(RoleSecurity, resp) },
		},
		{
			Role:        RolePerformance,
			DefaultType: TypePerformance,
			BuildPrompt: performancePrompt,
			Parse:       func(resp string) Result { return parseIssues(RolePerformance, resp) },
		},
		{
			Role:        RoleSeniorEngineer,
			DefaultType: TypeStyle,
			BuildPrompt: seniorEngineerPrompt,
			Parse:       func(resp string) Result { return parseIssues(RoleSeniorEngineer, resp) },
		},
		{
			Role:        RoleSummary,
			DefaultType: TypeStyle,
			BuildPrompt: summaryPrompt,
			Parse:       func(resp string) Result { return parseSummary(RoleSummary, resp) },
		},
	}
}
