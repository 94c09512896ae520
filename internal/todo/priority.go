package todo

import "strings"

var highKeywords = []string{
	"urgent", "critical", "asap", "blocker", "security", "crash",
	"data loss", "broken", "fixme", "bug",
}

var lowKeywords = []string{
	"later", "someday", "eventually", "nice to have", "cleanup",
	"polish", "cosmetic", "minor",
}

// InferPriority assigns a priority from keyword matching on the todo
// text. High wins over low when both match.
func InferPriority(content string) Priority {
	lower := strings.ToLower(content)

	for _, kw := range highKeywords {
		if strings.Contains(lower, kw) {
			return PriorityHigh
		}
	}

	for _, kw := range lowKeywords {
		if strings.Contains(lower, kw) {
			return PriorityLow
		}
	}

	return PriorityMedium
}
