package review

import (
	"strings"

	"prreview/internal/agents"
	"prreview/internal/diff"
	"prreview/internal/github"
)

// generalFile groups unstructured agent notes, which carry no file path.
const generalFile = "general"

// Aggregate merges the agents' results into one report. Issues are unioned
// without deduplication; an unstructured note becomes a single low-severity
// issue attributed to its role. The summary string comes from the Summary
// agent; every count is computed here, not taken from the model.
func Aggregate(files []diff.FileChange, results []agents.Result, pr *github.PullRequest) *ReviewReport {
	roleTypes := make(map[string]string)
	for _, a := range agents.DefaultAgents() {
		roleTypes[a.Role] = a.DefaultType
	}

	var issues []agents.Issue
	summary := ""
	for _, res := range results {
		if res.Role == agents.RoleSummary {
			summary = res.Note
			continue
		}
		if res.Structured {
			issues = append(issues, res.Issues...)
			continue
		}
		if res.Note == "" {
			continue
		}
		issues = append(issues, agents.Issue{
			File:     generalFile,
			Type:     roleTypes[res.Role],
			Severity: agents.SeverityLow,
			Message:  res.Note,
			Agent:    res.Role,
		})
	}

	report := &ReviewReport{
		Summary:            summary,
		Files:              make(map[string][]agents.Issue),
		TotalFilesAnalyzed: len(files),
		TotalIssuesFound:   len(issues),
		IssuesBySeverity: map[string]int{
			agents.SeverityHigh:   0,
			agents.SeverityMedium: 0,
			agents.SeverityLow:    0,
		},
		IssuesByType: map[string]int{
			agents.TypeLogic:       0,
			agents.TypeSecurity:    0,
			agents.TypePerformance: 0,
			agents.TypeStyle:       0,
		},
	}

	for _, issue := range issues {
		if issue.File == "" {
			issue.File = generalFile
		}
		// Models sometimes omit severity or type; default rather than
		// leaking an empty-string bucket into the count maps.
		issue.Severity = strings.ToLower(issue.Severity)
		if issue.Severity == "" {
			issue.Severity = agents.SeverityLow
		}
		issue.Type = strings.ToLower(issue.Type)
		if issue.Type == "" {
			if issue.Type = roleTypes[issue.Agent]; issue.Type == "" {
				issue.Type = agents.TypeLogic
			}
		}

		if _, seen := report.Files[issue.File]; !seen {
			report.FileOrder = append(report.FileOrder, issue.File)
		}
		report.Files[issue.File] = append(report.Files[issue.File], issue)
		report.IssuesBySeverity[issue.Severity]++
		report.IssuesByType[issue.Type]++
	}

	if pr != nil {
		report.Metadata = ReportMetadata{
			PRNumber:     pr.Number,
			PRTitle:      pr.Title,
			PRAuthor:     pr.Author,
			FilesChanged: len(files),
			Additions:    pr.Additions,
			Deletions:    pr.Deletions,
		}
	}

	return report
}
