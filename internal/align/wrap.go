package align

import (
	"strings"
)

// Wrap greedily fills lines of at most width characters. Words are never
// broken, hyphenated or not; a word longer than width gets a line of its own.
// Runs of whitespace collapse to a single space.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var (
		lines []string
		cur   strings.Builder
		n     int
	)
	for _, w := range words {
		ww := len([]rune(w))
		if n > 0 && n+1+ww > width {
			lines = append(lines, cur.String())
			cur.Reset()
			n = 0
		}
		if n > 0 {
			cur.WriteByte(' ')
			n++
		}
		cur.WriteString(w)
		n += ww
	}
	lines = append(lines, cur.String())
	return lines
}
