// Package synth builds a table creation script from a class declaration:
// the CREATE TABLE statement, one comment per column, the table comment and
// an optional sequence, all in the conventions of the chosen dialect.
package synth

import (
	"errors"
	"fmt"
	"strings"

	"sqlalign/internal/align"
	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
	"sqlalign/internal/mapper"
	"sqlalign/internal/parser/class"
)

// ErrorPrefix starts every sentinel text returned by SynthesizeText.
const ErrorPrefix = "-- Error:"

// DefaultTableSuffix is appended to table comments that lack it.
const DefaultTableSuffix = "表"

// ErrNoTypeName is returned when the input holds no class declaration.
var ErrNoTypeName = errors.New("synth: no class declaration found")

// Options controls synthesis. An empty Dialect falls back to MySQL;
// DefaultOptions targets PostgreSQL with every section enabled.
type Options struct {
	Schema            string
	IncludeDrop       bool
	IncludeBaseFields bool
	IncludeSequence   bool
	ConvertNaming     bool
	Dialect           dialect.Type
	TableSuffix       string
	Align             core.AlignOptions
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		IncludeDrop:       true,
		IncludeBaseFields: true,
		IncludeSequence:   true,
		ConvertNaming:     true,
		Dialect:           dialect.PostgreSQL,
		TableSuffix:       DefaultTableSuffix,
		Align:             core.DefaultAlignOptions(),
	}
}

// BaseFields are appended after the declared fields unless a declared
// field already converts to the same column name.
var BaseFields = []core.Field{
	{Type: "Long", Name: "tenantId", Comment: "Tenant ID"},
	{Type: "String", Name: "creator", Comment: "Creator"},
	{Type: "LocalDateTime", Name: "createTime", Comment: "Create time"},
	{Type: "String", Name: "updater", Comment: "Updater"},
	{Type: "LocalDateTime", Name: "updateTime", Comment: "Update time"},
	{Type: "Boolean", Name: "deleted", Comment: "Deleted flag"},
}

// Synthesize parses src and renders the script for its declaration.
func Synthesize(src string, opts Options) (string, error) {
	decl, err := class.NewParser().Parse(src)
	if errors.Is(err, class.ErrNoTypeName) {
		return "", fmt.Errorf("%w: %w", ErrNoTypeName, err)
	}
	if err != nil {
		return "", fmt.Errorf("synth: parse declaration: %w", err)
	}
	return Render(decl, opts), nil
}

// SynthesizeText is Synthesize for callers that only deal in text. Failures
// come back as a single line starting with ErrorPrefix; see IsErrorText.
func SynthesizeText(src string, opts Options) string {
	out, err := Synthesize(src, opts)
	if err != nil {
		return ErrorPrefix + " " + errorMessage(err)
	}
	return out
}

// IsErrorText reports whether s is a sentinel produced by SynthesizeText.
func IsErrorText(s string) bool {
	return strings.HasPrefix(s, ErrorPrefix)
}

func errorMessage(err error) string {
	if errors.Is(err, ErrNoTypeName) {
		return "no class, interface, record or enum declaration found in the input"
	}
	return err.Error()
}

type column struct {
	name    string
	mapping core.TypeMapping
	comment string
}

// Render builds the script for an already parsed declaration. The result has
// been passed through align.Align.
func Render(decl *core.Declaration, opts Options) string {
	d := dialect.GetDialect(opts.Dialect)

	tableName := decl.TableName
	if !decl.HasTableName() {
		tableName = decl.TypeName
		if opts.ConvertNaming {
			tableName = mapper.TableName(decl.TypeName)
		}
	}
	schema := opts.Schema
	if parts := align.SplitQuoted(tableName, '.'); len(parts) == 2 {
		schema, tableName = unquote(parts[0]), unquote(parts[1])
	}
	table := d.QualifiedName(schema, tableName)
	columns := buildColumns(decl, opts)

	var b strings.Builder

	if opts.IncludeDrop {
		b.WriteString("-- ----------------------------\n")
		fmt.Fprintf(&b, "-- Table structure for %s\n", tableName)
		b.WriteString("-- ----------------------------\n")
		fmt.Fprintf(&b, "DROP TABLE IF EXISTS %s;\n", table)
	}

	rows := make([]core.ColumnRow, 0, len(columns))
	for _, c := range columns {
		rows = append(rows, core.ColumnRow{
			Name: d.QuoteIdentifier(c.name),
			Type: c.mapping.SQLType,
			Rest: c.mapping.Rest(),
		})
	}
	fmt.Fprintf(&b, "CREATE TABLE %s (\n%s\n);\n", table, align.RenderColumns(rows))

	var comments []string
	switch d.Comments {
	case dialect.CommentOn:
		comments = commentOn(d, table, columns, tableComment(decl.Comment, opts.TableSuffix))
	default:
		comments = commentAlter(d, table, columns, tableComment(decl.Comment, opts.TableSuffix))
	}
	if len(comments) > 0 {
		b.WriteString("\n")
		for _, c := range comments {
			b.WriteString(c)
			b.WriteString("\n")
		}
	}

	if opts.IncludeSequence && d.Sequences && decl.HasSequence() {
		b.WriteString("\n")
		for _, stmt := range d.CreateSequence(strings.TrimSpace(decl.SequenceName)) {
			b.WriteString(stmt)
			b.WriteString("\n")
		}
	}

	return align.Align(b.String(), opts.Align)
}

func buildColumns(decl *core.Declaration, opts Options) []column {
	fields := decl.Fields
	if opts.IncludeBaseFields {
		fields = withBaseFields(fields)
	}

	columns := make([]column, 0, len(fields))
	for _, f := range fields {
		name := f.Name
		if opts.ConvertNaming {
			name = mapper.ConvertNaming(f.Name)
		}
		columns = append(columns, column{
			name:    name,
			mapping: mapper.MapType(f.Type, f.Name, opts.Dialect),
			comment: strings.TrimSpace(f.Comment),
		})
	}
	return columns
}

func withBaseFields(fields []core.Field) []core.Field {
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		seen[mapper.ConvertNaming(f.Name)] = true
	}

	out := make([]core.Field, 0, len(fields)+len(BaseFields))
	out = append(out, fields...)
	for _, f := range BaseFields {
		if seen[mapper.ConvertNaming(f.Name)] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// unquote removes one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// tableComment drops a trailing " DO" and appends suffix when missing.
func tableComment(comment, suffix string) string {
	comment = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(comment), " DO"))
	if comment == "" {
		return ""
	}
	if suffix != "" && !strings.HasSuffix(comment, suffix) {
		comment += suffix
	}
	return comment
}

func commentOn(d *dialect.Dialect, table string, columns []column, tableText string) []string {
	var out []string
	for _, c := range columns {
		if c.comment == "" {
			continue
		}
		out = append(out, fmt.Sprintf("COMMENT ON COLUMN %s.%s IS %s;",
			table, d.QuoteIdentifier(c.name), d.QuoteString(c.comment)))
	}
	if tableText != "" {
		out = append(out, fmt.Sprintf("COMMENT ON TABLE %s IS %s;", table, d.QuoteString(tableText)))
	}
	return out
}

func commentAlter(d *dialect.Dialect, table string, columns []column, tableText string) []string {
	var out []string
	for _, c := range columns {
		if c.comment == "" {
			continue
		}
		m := c.mapping
		// MODIFY COLUMN must not repeat the primary key.
		m.Constraints = strings.TrimSpace(strings.ReplaceAll(m.Constraints, "PRIMARY KEY", ""))

		def := m.SQLType
		if rest := m.Rest(); rest != "" {
			def += " " + rest
		}
		out = append(out, fmt.Sprintf("ALTER TABLE %s MODIFY COLUMN %s %s COMMENT %s;",
			table, d.QuoteIdentifier(c.name), def, d.QuoteString(c.comment)))
	}
	if tableText != "" {
		out = append(out, fmt.Sprintf("ALTER TABLE %s COMMENT = %s;", table, d.QuoteString(tableText)))
	}
	return out
}
