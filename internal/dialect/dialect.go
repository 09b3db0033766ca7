// Package dialect holds the fixed bundles of quoting, type-name and comment
// conventions used when SQL is synthesized for a target database. Each
// dialect is plain data: one type table, one set of heuristic types and one
// comment strategy, selected once by Type.
package dialect

import (
	"fmt"
	"strings"
)

type Type string

const (
	PostgreSQL Type = "postgresql"
	MySQL      Type = "mysql"
	Oracle     Type = "oracle"
)

// SupportedTypes returns every dialect in a stable order.
func SupportedTypes() []Type {
	return []Type{PostgreSQL, MySQL, Oracle}
}

// ParseType maps a user supplied name onto a Type. A few common aliases are
// accepted; anything else is an error.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "postgresql", "postgres", "pg":
		return PostgreSQL, nil
	case "mysql", "mariadb":
		return MySQL, nil
	case "oracle":
		return Oracle, nil
	default:
		return "", fmt.Errorf("unsupported dialect: %s; use 'postgresql', 'mysql', or 'oracle'", name)
	}
}

// CommentStyle selects how column and table comments are emitted.
type CommentStyle int

const (
	// CommentOn emits COMMENT ON COLUMN / COMMENT ON TABLE statements.
	CommentOn CommentStyle = iota
	// CommentAlter emits ALTER TABLE ... MODIFY COLUMN ... COMMENT and
	// ALTER TABLE ... COMMENT = statements.
	CommentAlter
)

// Dialect is an immutable bundle of conventions for one SQL variant.
type Dialect struct {
	name  Type
	quote byte

	// types maps a lower-cased source type name onto a SQL type.
	types map[string]string

	stringType string // fmt pattern taking a length
	fallback   string

	KeyType        string
	KeyConstraints string
	BigIntType     string
	IntType        string
	SmallIntType   string
	TimestampType  string

	Comments      CommentStyle
	Sequences     bool
	SequenceStart string
}

// Name returns the dialect type.
func (d *Dialect) Name() Type {
	return d.name
}

// QuoteIdentifier quotes name with the dialect's identifier quote, doubling
// any embedded quote characters.
func (d *Dialect) QuoteIdentifier(name string) string {
	q := string(d.quote)
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, q, q+q)
	return q + name + q
}

// QualifiedName quotes table, prefixed with the quoted schema when set.
func (d *Dialect) QualifiedName(schema, table string) string {
	if strings.TrimSpace(schema) == "" {
		return d.QuoteIdentifier(table)
	}
	return d.QuoteIdentifier(schema) + "." + d.QuoteIdentifier(table)
}

// QuoteString renders value as a single-quoted SQL literal.
func (d *Dialect) QuoteString(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('\'')
	for _, r := range value {
		switch r {
		case '\'':
			b.WriteString("''")
		case '\\':
			if d.name == MySQL {
				b.WriteString(`\\`)
				continue
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// String returns the bounded string type of length n.
func (d *Dialect) String(n int) string {
	return fmt.Sprintf(d.stringType, n)
}

// LookupType returns the SQL type for a source type name and whether the
// table knew it. Unknown names map onto the bounded string fallback.
func (d *Dialect) LookupType(source string) (string, bool) {
	if t, ok := d.types[strings.ToLower(strings.TrimSpace(source))]; ok {
		return t, true
	}
	return d.fallback, false
}

// CreateSequence renders the sequence statements for name, in order.
func (d *Dialect) CreateSequence(name string) []string {
	q := d.QuoteIdentifier(name)
	return []string{
		fmt.Sprintf("DROP SEQUENCE IF EXISTS %s;", q),
		fmt.Sprintf("CREATE SEQUENCE %s %s;", q, d.SequenceStart),
	}
}

var registry = map[Type]func() *Dialect{}

// RegisterDialect creates a new registry entry for the specified dialect.
func RegisterDialect(t Type, ctor func() *Dialect) {
	registry[t] = ctor
}

// GetDialect returns the dialect for the specified type from the registry.
// Unknown types fall back to MySQL, matching how Oracle borrows MySQL's
// type table.
func GetDialect(t Type) *Dialect {
	if ctor, ok := registry[t]; ok {
		return ctor()
	}
	if ctor, ok := registry[MySQL]; ok {
		return ctor()
	}
	return nil
}

func init() {
	RegisterDialect(PostgreSQL, newPostgreSQL)
	RegisterDialect(MySQL, newMySQL)
	RegisterDialect(Oracle, newOracle)
}
