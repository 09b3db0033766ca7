package align

import (
	"regexp"
	"strings"
)

// ident matches one SQL identifier segment: double-quoted, backtick-quoted
// or bare. Bare segments stop at whitespace, dots, quotes and '('.
const ident = "(?:\"[^\"]+\"|`[^`]+`|[^\\s\"`.(]+)"

const (
	createTableExpr = `(CREATE\s+TABLE\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:` + ident + `\.)?` + ident + `\s*\()` +
		`(.*?)` +
		`(\s*\)\s*;)`

	commentExpr = `(COMMENT\s+ON\s+(?:` +
		`TABLE\s+` + ident + `(?:\.` + ident + `)?` +
		`|` +
		`COLUMN\s+` + ident + `(?:\.` + ident + `){1,2}` +
		`))\s+IS\s+'((?:[^']|'')*)';`

	columnExpr = "^(\"[^\"]+\"|`[^`]+`)\\s*(\\S+)(.*)$"
)

type patternSet struct {
	createTable *regexp.Regexp
	comment     *regexp.Regexp
}

var (
	caseSensitivePatterns = patternSet{
		createTable: regexp.MustCompile(`(?s)` + createTableExpr),
		comment:     regexp.MustCompile(`(?s)` + commentExpr),
	}
	caseInsensitivePatterns = patternSet{
		createTable: regexp.MustCompile(`(?is)` + createTableExpr),
		comment:     regexp.MustCompile(`(?is)` + commentExpr),
	}

	columnRe = regexp.MustCompile(`(?s)` + columnExpr)

	// blankBeforeCommentRe finds blank-line runs between a ");" terminator
	// and the COMMENT statement that follows it.
	blankBeforeCommentRe = regexp.MustCompile(`(?i)\);[ \t]*\r?\n(?:[ \t]*\r?\n)+([ \t]*COMMENT)`)
)

func patternsFor(caseSensitive bool) patternSet {
	if caseSensitive {
		return caseSensitivePatterns
	}
	return caseInsensitivePatterns
}

// replaceAllSubmatchFunc replaces every match of re in s with the result of
// fn, which receives the full match followed by its capture groups.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = s[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(s[last:m[0]])
		b.WriteString(fn(groups))
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
