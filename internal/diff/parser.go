// Package diff parses unified diff text into structured per-file changes.
package diff

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a single diff line.
type LineKind string

const (
	LineAdded   LineKind = "added"
	LineRemoved LineKind = "removed"
	LineContext LineKind = "context"
)

// Line is a single line inside a hunk. OldLine is set for removed and
// context lines, NewLine for added and context lines; 0 means not present.
type Line struct {
	Kind    LineKind
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous block of changes delimited by an @@ header.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// FileChange holds all hunks for one file, in order of appearance.
type FileChange struct {
	Path      string
	Status    string // "added", "removed", "modified"
	Additions int
	Deletions int
	Hunks     []Hunk
}

// AddedLines returns the added lines across all hunks, in order.
func (f *FileChange) AddedLines() []Line {
	var lines []Line
	for _, h := range f.Hunks {
		for _, l := range h.Lines {
			if l.Kind == LineAdded {
				lines = append(lines, l)
			}
		}
	}
	return lines
}

// ParseError reports a malformed diff, naming the offending line.
type ParseError struct {
	LineNo int // 1-based position in the diff text
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("diff parse error at line %d: %s: %q", e.LineNo, e.Reason, e.Line)
}

var (
	fileHeaderRe = regexp.MustCompile(`^diff --git a/(.+?) b/(.+)$`)
	hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)
)

// Parse converts raw unified-diff text into an ordered list of FileChanges.
// The parse is strict: a malformed file or hunk header fails the whole parse
// with a ParseError. Metadata lines (index, ---/+++, mode changes) are
// skipped.
func Parse(raw string) ([]FileChange, error) {
	var (
		files   []FileChange
		current *FileChange
		hunk    *Hunk
		oldLine int
		newLine int
	)

	flushHunk := func() {
		if hunk != nil && current != nil {
			current.Hunks = append(current.Hunks, *hunk)
		}
		hunk = nil
	}
	flushFile := func() {
		flushHunk()
		if current != nil {
			files = append(files, *current)
		}
		current = nil
	}

	for i, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			m := fileHeaderRe.FindStringSubmatch(line)
			if m == nil {
				return nil, &ParseError{LineNo: i + 1, Line: line, Reason: "malformed file header"}
			}
			flushFile()
			current = &FileChange{Path: m[2], Status: "modified"}

		case strings.HasPrefix(line, "@@"):
			m := hunkHeaderRe.FindStringSubmatch(line)
			if m == nil {
				return nil, &ParseError{LineNo: i + 1, Line: line, Reason: "malformed hunk header"}
			}
			if current == nil {
				return nil, &ParseError{LineNo: i + 1, Line: line, Reason: "hunk header before file header"}
			}
			flushHunk()
			hunk = &Hunk{
				OldStart: atoi(m[1]),
				OldCount: atoiDefault(m[2], 1),
				NewStart: atoi(m[3]),
				NewCount: atoiDefault(m[4], 1),
			}
			oldLine = hunk.OldStart
			newLine = hunk.NewStart

		case current != nil && strings.HasPrefix(line, "new file"):
			current.Status = "added"

		case current != nil && strings.HasPrefix(line, "deleted file"):
			current.Status = "removed"

		case hunk != nil && strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineAdded, Content: line[1:], NewLine: newLine})
			newLine++
			current.Additions++

		case hunk != nil && strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineRemoved, Content: line[1:], OldLine: oldLine})
			oldLine++
			current.Deletions++

		case hunk != nil && strings.HasPrefix(line, " "):
			hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: line[1:], OldLine: oldLine, NewLine: newLine})
			oldLine++
			newLine++

		default:
			// index lines, ---/+++ headers, "\ No newline" markers, blank
			// trailing line
		}
	}

	flushFile()
	return files, nil
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	return atoi(s)
}
