// Package tracker holds what the three tracker servers share: the todo
// fields a caller attaches to a sync request and how they merge into an
// outbound issue payload.
package tracker

import (
	"fmt"
	"strings"
)

// TodoFields are the todo attributes accepted by every sync_* /
// create_*_issue tool. Only Content is required.
type TodoFields struct {
	Content  string   `json:"content"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
	FilePath string   `json:"file_path"`
	Line     int      `json:"line"`
}

const maxTitleLen = 80

// IssueTitle derives an issue title from the todo text, truncated on a
// word boundary where possible.
func (f TodoFields) IssueTitle() string {
	title := strings.TrimSpace(f.Content)
	if len(title) <= maxTitleLen {
		return title
	}

	cut := title[:maxTitleLen]
	if idx := strings.LastIndex(cut, " "); idx > maxTitleLen/2 {
		cut = cut[:idx]
	}
	return cut + "..."
}

// IssueBody renders the todo metadata as a markdown body.
func (f TodoFields) IssueBody() string {
	var b strings.Builder
	b.WriteString(f.Content)
	b.WriteString("\n")

	if f.FilePath != "" {
		b.WriteString(fmt.Sprintf("\n**Location:** `%s", f.FilePath))
		if f.Line > 0 {
			b.WriteString(fmt.Sprintf(":%d", f.Line))
		}
		b.WriteString("`\n")
	}
	if f.Priority != "" {
		b.WriteString(fmt.Sprintf("\n**Priority:** %s\n", f.Priority))
	}
	if len(f.Tags) > 0 {
		b.WriteString(fmt.Sprintf("\n**Tags:** %s\n", strings.Join(f.Tags, ", ")))
	}

	return b.String()
}

// IssueLabels merges tags with a priority label.
func (f TodoFields) IssueLabels() []string {
	labels := append([]string{"todo"}, f.Tags...)
	if f.Priority != "" {
		labels = append(labels, "priority:"+f.Priority)
	}
	return labels
}
