package align

import (
	"strings"
	"unicode/utf8"

	"sqlalign/internal/core"
)

const indent = "    "

// ParseColumn splits one column-list fragment into its quoted name, type
// token and remainder. Fragments without a leading quoted identifier, such
// as table-level constraints, come back with only Rest set.
func ParseColumn(fragment string) core.ColumnRow {
	fragment = strings.TrimSpace(fragment)
	m := columnRe.FindStringSubmatch(fragment)
	if m == nil {
		return core.ColumnRow{Rest: fragment}
	}
	return core.ColumnRow{
		Name: strings.TrimSpace(m[1]),
		Type: m[2],
		Rest: strings.TrimSpace(m[3]),
	}
}

// ParseColumns splits a CREATE TABLE body on top-level commas and parses
// every fragment.
func ParseColumns(body string) []core.ColumnRow {
	chunks := ColumnSplitter.Split(body)
	rows := make([]core.ColumnRow, 0, len(chunks))
	for _, chunk := range chunks {
		rows = append(rows, ParseColumn(chunk))
	}
	return rows
}

// Widths returns the widest name and type among the parsed rows.
func Widths(rows []core.ColumnRow) (name, typ int) {
	for _, r := range rows {
		if !r.Parsed() {
			continue
		}
		name = max(name, width(r.Name))
		typ = max(typ, width(r.Type))
	}
	return name, typ
}

// RenderColumns renders rows as an indented, comma-joined column block with
// names and types padded to a common width. Unparsed rows are emitted
// verbatim in place.
func RenderColumns(rows []core.ColumnRow) string {
	nameWidth, typeWidth := Widths(rows)

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		if !r.Parsed() {
			lines = append(lines, indent+r.Rest)
			continue
		}
		line := indent + pad(r.Name, nameWidth) + " " + pad(r.Type, typeWidth) + " " + r.Rest
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return strings.Join(lines, ",\n")
}

// AlignColumns re-renders the column list of every CREATE TABLE statement
// in text. Each statement is aligned independently.
func AlignColumns(text string, opts core.AlignOptions) string {
	re := patternsFor(opts.CaseSensitive).createTable
	return replaceAllSubmatchFunc(re, text, func(g []string) string {
		rows := ParseColumns(g[2])
		if len(rows) == 0 {
			return g[0]
		}
		return g[1] + "\n" + RenderColumns(rows) + g[3]
	})
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

// pad left-justifies s in a field of n characters.
func pad(s string, n int) string {
	if w := width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
