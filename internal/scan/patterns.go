package scan

import "regexp"

// Markers recognized inside comments. The capture groups are the marker
// keyword and the text after it; an optional "(author)" and ":" between
// them are swallowed.
var markerRe = regexp.MustCompile(`(?i)\b(TODO|FIXME|HACK|XXX|NOTE|BUG)\b(?:\([^)]*\))?:?\s*(.*)`)

// commentRe filters lines to ones that look like comments before the
// marker regex runs, so identifiers like "todoList" don't match.
var commentRe = regexp.MustCompile(`(^|\s)(//|#|--|;|\*|/\*|<!--)`)

// matchMarker returns the marker keyword and trailing text when a line
// contains a recognized comment marker, or ok=false.
func matchMarker(line string) (marker, text string, ok bool) {
	if !commentRe.MatchString(line) {
		return "", "", false
	}

	m := markerRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}

	return m[1], m[2], true
}

// DefaultIgnorePatterns are doublestar globs skipped by the scanner and
// the watcher.
var DefaultIgnorePatterns = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/dist/**",
	"**/build/**",
	"**/target/**",
	"**/__pycache__/**",
	"**/.venv/**",
	"**/*.min.js",
	"**/*.lock",
}
