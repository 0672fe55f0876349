package review

import (
	"fmt"
	"strings"

	"prreview/internal/agents"
)

var severityEmoji = map[string]string{
	agents.SeverityHigh:   "🔴",
	agents.SeverityMedium: "🟡",
	agents.SeverityLow:    "🟢",
}

// FormatComment renders the report as a human-readable GitHub comment body.
func FormatComment(report *ReviewReport) string {
	var sb strings.Builder

	sb.WriteString("## 🤖 Automated PR Review\n\n")

	if report.Summary != "" {
		sb.WriteString("### Summary\n")
		sb.WriteString(report.Summary)
		sb.WriteString("\n\n")
	}

	if report.TotalIssuesFound > 0 {
		sb.WriteString("### Detailed Findings\n\n")
		for _, path := range report.FileOrder {
			fmt.Fprintf(&sb, "#### 📄 `%s`\n\n", path)
			for _, issue := range report.Files[path] {
				emoji, ok := severityEmoji[strings.ToLower(issue.Severity)]
				if !ok {
					emoji = "⚪"
				}
				fmt.Fprintf(&sb, "%s **%s**", emoji, strings.ToUpper(issue.Type))
				if issue.Line > 0 {
					fmt.Fprintf(&sb, " (Line %d)", issue.Line)
				}
				sb.WriteString("\n")
				fmt.Fprintf(&sb, "- %s\n", issue.Message)
				if issue.Suggestion != "" {
					fmt.Fprintf(&sb, "- 💡 *Suggestion:* %s\n", issue.Suggestion)
				}
				sb.WriteString("\n")
			}
		}
	} else {
		sb.WriteString("✅ No issues found!\n")
	}

	fmt.Fprintf(&sb, "---\nAnalyzed %d files, found %d issues (high: %d, medium: %d, low: %d).\n",
		report.TotalFilesAnalyzed,
		report.TotalIssuesFound,
		report.IssuesBySeverity[agents.SeverityHigh],
		report.IssuesBySeverity[agents.SeverityMedium],
		report.IssuesBySeverity[agents.SeverityLow],
	)
	sb.WriteString("\n*Generated by the PR review service*")

	return sb.String()
}
