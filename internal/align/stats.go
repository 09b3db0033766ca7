package align

import (
	"strings"

	"sqlalign/internal/core"
)

var commentMarkers = []string{"--", "/*", "COMMENT"}

// ComputeStats counts lines, non-empty lines, comment-like lines and the
// NOT NULL / DEFAULT markers used as a rough field count.
func ComputeStats(text string) core.Stats {
	var s core.Stats
	if text == "" {
		return s
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	s.TotalLines = len(lines)
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" {
			continue
		}
		s.NonEmptyLines++
		if isCommentLine(trimmed) {
			s.CommentLines++
		}
	}

	upper := strings.ToUpper(text)
	s.FieldMarkers = strings.Count(upper, "NOT NULL") + strings.Count(upper, "DEFAULT")
	return s
}

func isCommentLine(trimmed string) bool {
	upper := strings.ToUpper(trimmed)
	for _, m := range commentMarkers {
		if strings.HasPrefix(upper, m) {
			return true
		}
	}
	return false
}
