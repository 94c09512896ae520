package tracker

import (
	"strings"
	"testing"
)

func TestIssueTitleShort(t *testing.T) {
	f := TodoFields{Content: "  fix the login redirect  "}
	if got := f.IssueTitle(); got != "fix the login redirect" {
		t.Errorf("got %q", got)
	}
}

func TestIssueTitleTruncatesOnWordBoundary(t *testing.T) {
	f := TodoFields{Content: strings.Repeat("word ", 40)}
	title := f.IssueTitle()

	if len(title) > maxTitleLen+3 {
		t.Errorf("title too long: %d chars", len(title))
	}
	if !strings.HasSuffix(title, "...") {
		t.Errorf("truncated title should end with ellipsis: %q", title)
	}
	if strings.HasSuffix(strings.TrimSuffix(title, "..."), "wor") {
		t.Errorf("cut mid-word: %q", title)
	}
}

func TestIssueBody(t *testing.T) {
	f := TodoFields{
		Content:  "handle timeout in the sync loop",
		Priority: "high",
		Tags:     []string{"bug", "sync"},
		FilePath: "internal/sync/loop.go",
		Line:     120,
	}
	body := f.IssueBody()

	for _, want := range []string{
		"handle timeout in the sync loop",
		"`internal/sync/loop.go:120`",
		"**Priority:** high",
		"**Tags:** bug, sync",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestIssueBodyMinimal(t *testing.T) {
	f := TodoFields{Content: "just text"}
	body := f.IssueBody()

	if strings.Contains(body, "Location") || strings.Contains(body, "Priority") {
		t.Errorf("optional sections should be absent:\n%s", body)
	}
}

func TestIssueBodyFileWithoutLine(t *testing.T) {
	f := TodoFields{Content: "x", FilePath: "main.go"}
	if body := f.IssueBody(); !strings.Contains(body, "`main.go`") {
		t.Errorf("got:\n%s", body)
	}
}

func TestIssueLabels(t *testing.T) {
	f := TodoFields{Priority: "low", Tags: []string{"docs"}}
	labels := f.IssueLabels()

	want := []string{"todo", "docs", "priority:low"}
	if len(labels) != len(want) {
		t.Fatalf("got %v", labels)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d: got %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestIssueLabelsNoPriority(t *testing.T) {
	f := TodoFields{}
	labels := f.IssueLabels()
	if len(labels) != 1 || labels[0] != "todo" {
		t.Errorf("got %v", labels)
	}
}
