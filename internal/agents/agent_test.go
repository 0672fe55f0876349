package agents

import (
	"strings"
	"testing"
)

func TestParseIssuesStructured(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantIssues int
		wantNote   bool
	}{
		{
			name:       "plain json",
			response:   `{"issues":[{"file":"a.py","line":3,"type":"logic","severity":"high","message":"off by one"}]}`,
			wantIssues: 1,
		},
		{
			name: "fenced json",
			response: "```json\n" +
				`{"issues":[{"file":"a.py","line":3,"type":"security","severity":"medium","message":"raw sql"}]}` +
				"\n```",
			wantIssues: 1,
		},
		{
			name:       "empty issues",
			response:   `{"issues":[]}`,
			wantIssues: 0,
		},
		{
			name:     "free text",
			response: "The code looks mostly fine but consider renaming the handler.",
			wantNote: true,
		},
		{
			name:     "truncated json",
			response: `{"issues":[{"file":"a.py",`,
			wantNote: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseIssues(RoleReviewer, tt.response)

			if tt.wantNote {
				if res.Structured {
					t.Fatalf("expected unstructured result, got issues %v", res.Issues)
				}
				if res.Note == "" {
					t.Error("fallback note should carry the response text")
				}
				return
			}

			if !res.Structured {
				t.Fatalf("expected structured result, got note %q", res.Note)
			}
			if len(res.Issues) != tt.wantIssues {
				t.Errorf("issues = %d, want %d", len(res.Issues), tt.wantIssues)
			}
			for _, is := range res.Issues {
				if is.Agent != RoleReviewer {
					t.Errorf("issue agent = %q, want %q", is.Agent, RoleReviewer)
				}
			}
		})
	}
}

func TestParseSummary(t *testing.T) {
	res := parseSummary(RoleSummary, `{"summary":"Overall the PR is solid."}`)
	if res.Note != "Overall the PR is solid." {
		t.Errorf("summary note = %q", res.Note)
	}

	res = parseSummary(RoleSummary, "Just a plain text verdict.")
	if res.Structured {
		t.Error("plain text should not be marked structured")
	}
	if res.Note != "Just a plain text verdict." {
		t.Errorf("fallback note = %q", res.Note)
	}
}

func TestPromptsIncludeChangedCode(t *testing.T) {
	files := testFiles()
	pr := PRContext{Number: 7, Title: "Add retry logic", Author: "dev"}

	for _, agent := range DefaultAgents() {
		prompt := agent.BuildPrompt(files, pr, "")
		if !strings.Contains(prompt, "app/server.py") {
			t.Errorf("%s prompt missing file path", agent.Role)
		}
		if !strings.Contains(prompt, "Add retry logic") {
			t.Errorf("%s prompt missing PR title", agent.Role)
		}
	}

	reviewer := DefaultAgents()[0]
	prompt := reviewer.BuildPrompt(files, pr, "")
	if !strings.Contains(prompt, "10: new_handler()") {
		t.Errorf("reviewer prompt should show numbered added lines:\n%s", prompt)
	}
}

func TestPromptsIncludePriorOutput(t *testing.T) {
	files := testFiles()
	pr := PRContext{Number: 1, Title: "t"}

	for _, agent := range DefaultAgents()[1:] {
		prompt := agent.BuildPrompt(files, pr, "--- Code Reviewer ---\nearlier findings here")
		if !strings.Contains(prompt, "earlier findings here") {
			t.Errorf("%s prompt should carry prior agent output", agent.Role)
		}
	}
}
