package review

import (
	"strings"
	"testing"

	"prreview/internal/agents"
	"prreview/internal/diff"
	"prreview/internal/github"
)

func parsedFiles(t *testing.T) []diff.FileChange {
	t.Helper()
	files, err := diff.Parse(`diff --git a/a.py b/a.py
--- a/a.py
+++ b/a.py
@@ -1,1 +1,1 @@
-x = 1
+x = 2
diff --git a/b.py b/b.py
--- a/b.py
+++ b/b.py
@@ -5,1 +5,1 @@
-y = 1
+y = 2
`)
	if err != nil {
		t.Fatalf("parse test diff: %v", err)
	}
	return files
}

func TestAggregateSeverityCounts(t *testing.T) {
	files := parsedFiles(t)
	results := []agents.Result{
		{Role: agents.RoleReviewer, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Type: agents.TypeLogic, Severity: agents.SeverityHigh, Message: "bad"},
		}},
		{Role: agents.RoleSecurity, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Type: agents.TypeSecurity, Severity: agents.SeverityLow, Message: "meh"},
		}},
	}

	report := Aggregate(files, results, nil)

	if report.TotalIssuesFound != 2 {
		t.Errorf("TotalIssuesFound = %d, want 2", report.TotalIssuesFound)
	}
	want := map[string]int{"high": 1, "medium": 0, "low": 1}
	for sev, count := range want {
		if report.IssuesBySeverity[sev] != count {
			t.Errorf("IssuesBySeverity[%s] = %d, want %d", sev, report.IssuesBySeverity[sev], count)
		}
	}
}

func TestAggregateCountsAreConsistent(t *testing.T) {
	files := parsedFiles(t)
	results := []agents.Result{
		{Role: agents.RoleReviewer, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Type: agents.TypeLogic, Severity: agents.SeverityHigh, Message: "m1"},
			{File: "b.py", Type: agents.TypeStyle, Severity: agents.SeverityLow, Message: "m2"},
			{File: "b.py", Type: "naming", Severity: "critical", Message: "off-enum values"},
		}},
		{Role: agents.RolePerformance, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Type: agents.TypePerformance, Severity: agents.SeverityMedium, Message: "m3"},
		}},
		{Role: agents.RoleSummary, Note: "done"},
	}

	report := Aggregate(files, results, nil)

	sevSum, typeSum, fileSum := 0, 0, 0
	for _, n := range report.IssuesBySeverity {
		sevSum += n
	}
	for _, n := range report.IssuesByType {
		typeSum += n
	}
	for _, issues := range report.Files {
		fileSum += len(issues)
	}

	if report.TotalIssuesFound != 4 || sevSum != 4 || typeSum != 4 || fileSum != 4 {
		t.Errorf("counts inconsistent: total=%d sevSum=%d typeSum=%d fileSum=%d, want all 4",
			report.TotalIssuesFound, sevSum, typeSum, fileSum)
	}
}

func TestAggregateFilesAnalyzedIndependentOfIssues(t *testing.T) {
	files := parsedFiles(t)

	// Issues only in a.py; b.py still counts as analyzed.
	results := []agents.Result{
		{Role: agents.RoleReviewer, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Type: agents.TypeLogic, Severity: agents.SeverityLow, Message: "m"},
		}},
	}

	report := Aggregate(files, results, nil)

	if report.TotalFilesAnalyzed != 2 {
		t.Errorf("TotalFilesAnalyzed = %d, want 2", report.TotalFilesAnalyzed)
	}
	if len(report.Files) != 1 {
		t.Errorf("Files with issues = %d, want 1", len(report.Files))
	}
}

func TestAggregateNoDedup(t *testing.T) {
	files := parsedFiles(t)
	dup := agents.Issue{File: "a.py", Line: 1, Type: agents.TypeLogic, Severity: agents.SeverityHigh, Message: "same issue"}
	results := []agents.Result{
		{Role: agents.RoleReviewer, Structured: true, Issues: []agents.Issue{dup}},
		{Role: agents.RoleSeniorEngineer, Structured: true, Issues: []agents.Issue{dup}},
	}

	report := Aggregate(files, results, nil)

	if len(report.Files["a.py"]) != 2 {
		t.Errorf("duplicate issues should both appear, got %d", len(report.Files["a.py"]))
	}
}

func TestAggregateUnstructuredNote(t *testing.T) {
	files := parsedFiles(t)
	results := []agents.Result{
		{Role: agents.RoleSecurity, Note: "response was not JSON but mentioned a hardcoded key"},
	}

	report := Aggregate(files, results, nil)

	issues := report.Files[generalFile]
	if len(issues) != 1 {
		t.Fatalf("note should become one issue, got %d", len(issues))
	}
	is := issues[0]
	if is.Type != agents.TypeSecurity || is.Severity != agents.SeverityLow {
		t.Errorf("note issue = %+v, want security/low", is)
	}
	if is.Agent != agents.RoleSecurity {
		t.Errorf("note issue agent = %q", is.Agent)
	}
}

func TestAggregateDefaultsMissingSeverityAndType(t *testing.T) {
	files := parsedFiles(t)
	results := []agents.Result{
		{Role: agents.RoleSecurity, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Message: "no severity or type", Agent: agents.RoleSecurity},
		}},
		{Role: agents.RoleReviewer, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Message: "unattributed", Agent: "Someone Else"},
		}},
	}

	report := Aggregate(files, results, nil)

	if _, ok := report.IssuesBySeverity[""]; ok {
		t.Error("issues_by_severity must not contain an empty-string bucket")
	}
	if _, ok := report.IssuesByType[""]; ok {
		t.Error("issues_by_type must not contain an empty-string bucket")
	}
	if report.IssuesBySeverity[agents.SeverityLow] != 2 {
		t.Errorf("IssuesBySeverity[low] = %d, want 2", report.IssuesBySeverity[agents.SeverityLow])
	}
	if report.IssuesByType[agents.TypeSecurity] != 1 {
		t.Errorf("IssuesByType[security] = %d, want 1 (role default)", report.IssuesByType[agents.TypeSecurity])
	}
	if report.IssuesByType[agents.TypeLogic] != 1 {
		t.Errorf("IssuesByType[logic] = %d, want 1 (unknown-role default)", report.IssuesByType[agents.TypeLogic])
	}

	for _, issue := range report.Files["a.py"] {
		if issue.Severity == "" || issue.Type == "" {
			t.Errorf("stored issue still missing fields: %+v", issue)
		}
	}
}

func TestAggregateSummaryAndMetadata(t *testing.T) {
	files := parsedFiles(t)
	results := []agents.Result{
		{Role: agents.RoleSummary, Structured: true, Note: "Looks good overall."},
	}
	pr := &github.PullRequest{Number: 42, Title: "Fix things", Author: "dev", Additions: 2, Deletions: 2}

	report := Aggregate(files, results, pr)

	if report.Summary != "Looks good overall." {
		t.Errorf("Summary = %q", report.Summary)
	}
	if report.Metadata.PRNumber != 42 || report.Metadata.PRAuthor != "dev" {
		t.Errorf("Metadata = %+v", report.Metadata)
	}
	if report.Metadata.FilesChanged != 2 {
		t.Errorf("Metadata.FilesChanged = %d, want 2", report.Metadata.FilesChanged)
	}
}

func TestAggregateFileOrderIsFirstSeen(t *testing.T) {
	files := parsedFiles(t)
	results := []agents.Result{
		{Role: agents.RoleReviewer, Structured: true, Issues: []agents.Issue{
			{File: "b.py", Type: agents.TypeLogic, Severity: agents.SeverityLow, Message: "first"},
			{File: "a.py", Type: agents.TypeLogic, Severity: agents.SeverityLow, Message: "second"},
			{File: "b.py", Type: agents.TypeLogic, Severity: agents.SeverityLow, Message: "third"},
		}},
	}

	report := Aggregate(files, results, nil)

	if len(report.FileOrder) != 2 || report.FileOrder[0] != "b.py" || report.FileOrder[1] != "a.py" {
		t.Errorf("FileOrder = %v, want [b.py a.py]", report.FileOrder)
	}
}

func TestFormatComment(t *testing.T) {
	files := parsedFiles(t)
	results := []agents.Result{
		{Role: agents.RoleReviewer, Structured: true, Issues: []agents.Issue{
			{File: "a.py", Line: 1, Type: agents.TypeLogic, Severity: agents.SeverityHigh, Message: "broken", Suggestion: "fix it"},
		}},
		{Role: agents.RoleSummary, Note: "One issue found."},
	}

	report := Aggregate(files, results, nil)
	body := FormatComment(report)

	for _, want := range []string{
		"## 🤖 Automated PR Review",
		"One issue found.",
		"`a.py`",
		"🔴 **LOGIC** (Line 1)",
		"- broken",
		"💡 *Suggestion:* fix it",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("comment body missing %q:\n%s", want, body)
		}
	}
}

func TestFormatCommentNoIssues(t *testing.T) {
	report := Aggregate(parsedFiles(t), nil, nil)
	body := FormatComment(report)
	if !strings.Contains(body, "✅ No issues found!") {
		t.Errorf("comment body should report a clean review:\n%s", body)
	}
}
