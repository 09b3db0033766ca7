// Package align rewrites CREATE TABLE and COMMENT ON statements into a
// column-aligned canonical layout. It does not parse SQL: statements are
// located with patterns and anything that does not match passes through
// untouched.
package align

import (
	"fmt"
	"strings"

	"sqlalign/internal/core"
)

// Align runs the full alignment pass over text: comment statements first,
// then CREATE TABLE column lists, then blank lines between a table's ");"
// and the comments that follow it are collapsed. Align is idempotent.
func Align(text string, opts core.AlignOptions) string {
	text = AlignComments(text, opts)
	text = AlignColumns(text, opts)
	return blankBeforeCommentRe.ReplaceAllString(text, ");\n$1")
}

// NumberLines prefixes every line with a right-aligned 1-based line number.
func NumberLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = fmt.Sprintf("%3d: %s", i+1, l)
	}
	return strings.Join(lines, "\n")
}

// Report wraps aligned output with a short header that records the line
// count of the original input.
func Report(original, aligned string) string {
	stats := ComputeStats(original)
	return fmt.Sprintf("-- Alignment Report\n-- Original Lines: %d\n%s", stats.TotalLines, aligned)
}
