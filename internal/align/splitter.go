package align

import (
	"strings"
	"unicode/utf8"
)

// Splitter partitions text on a separator while leaving separators inside
// quoted spans (and, when Nested is set, inside parentheses) alone. With
// LineComments set, "--" outside a quoted span starts a comment that runs to
// the end of the line; comments are dropped from the fragments.
// Emitted fragments are trimmed and empty fragments are dropped.
//
// Unbalanced quotes are not detected: an unterminated span simply runs to
// the end of the text.
type Splitter struct {
	Sep          rune
	Quotes       string
	Nested       bool
	LineComments bool
}

// ColumnSplitter splits a CREATE TABLE body on top-level commas.
var ColumnSplitter = Splitter{Sep: ',', Quotes: "\"'`", Nested: true}

// StatementSplitter splits a script into statements on semicolons.
var StatementSplitter = Splitter{Sep: ';', Quotes: "'\"`", LineComments: true}

// SplitQuoted splits text on sep, ignoring separators inside double-quoted spans.
func SplitQuoted(text string, sep rune) []string {
	return Splitter{Sep: sep, Quotes: `"`}.Split(text)
}

// Split returns the trimmed, non-empty fragments of text.
func (s Splitter) Split(text string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote rune
		depth int
	)

	flush := func() {
		if frag := strings.TrimSpace(cur.String()); frag != "" {
			out = append(out, frag)
		}
		cur.Reset()
	}

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		if quote == 0 && s.LineComments && strings.HasPrefix(text[i:], "--") {
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				break
			}
			i += end
			continue
		}
		i += size

		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case strings.ContainsRune(s.Quotes, r):
			quote = r
		case s.Nested && r == '(':
			depth++
		case s.Nested && r == ')' && depth > 0:
			depth--
		case r == s.Sep && depth == 0:
			flush()
			continue
		}
		cur.WriteRune(r)
	}
	flush()

	return out
}
