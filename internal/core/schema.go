// Package core contains the value types shared by the aligner, the
// declaration parser and the DDL synthesizer. Nothing in this package is
// mutated after construction; every transformation builds new values.
package core

import (
	"strings"
)

// ColumnRow is one comma-separated fragment of a CREATE TABLE column list.
// When Name is empty the fragment could not be parsed as a column (for
// example a table-level PRIMARY KEY constraint) and Rest holds it verbatim.
type ColumnRow struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	Rest string `json:"rest,omitempty"`
}

// Parsed reports whether the row takes part in width computation.
func (r ColumnRow) Parsed() bool {
	return r.Name != ""
}

// CommentHeader is a COMMENT ON statement split at its IS keyword.
type CommentHeader struct {
	Prefix string `json:"prefix"`
	Body   string `json:"body"`
}

// Declaration is what the class parser extracts from a class-like source file.
type Declaration struct {
	TypeName     string  `json:"typeName"`
	TableName    string  `json:"tableName,omitempty"`
	SequenceName string  `json:"sequenceName,omitempty"`
	Comment      string  `json:"comment,omitempty"`
	Fields       []Field `json:"fields"`
}

// HasTableName reports whether an annotation supplied the table name.
func (d *Declaration) HasTableName() bool {
	return d != nil && strings.TrimSpace(d.TableName) != ""
}

// HasSequence reports whether an annotation supplied a sequence name.
func (d *Declaration) HasSequence() bool {
	return d != nil && strings.TrimSpace(d.SequenceName) != ""
}

// Field is a single field declaration in source order.
type Field struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
}

// TypeMapping is the SQL rendering of one field for a given dialect.
type TypeMapping struct {
	SQLType     string `json:"sqlType"`
	Constraints string `json:"constraints,omitempty"`
	Default     string `json:"default,omitempty"`
}

// Rest joins constraints and the default clause the way they appear after
// the type in a column definition.
func (m TypeMapping) Rest() string {
	var parts []string
	if c := strings.TrimSpace(m.Constraints); c != "" {
		parts = append(parts, c)
	}
	if d := strings.TrimSpace(m.Default); d != "" {
		parts = append(parts, "DEFAULT "+d)
	}
	return strings.Join(parts, " ")
}

// Stats holds line and field counts for a text blob.
type Stats struct {
	TotalLines    int `json:"totalLines"`
	NonEmptyLines int `json:"nonEmptyLines"`
	CommentLines  int `json:"commentLines"`
	FieldMarkers  int `json:"fieldMarkers"`
}

// TableInfo is a table as a live database reports it.
type TableInfo struct {
	Name    string       `json:"name"`
	Comment string       `json:"comment,omitempty"`
	Columns []ColumnInfo `json:"columns"`
}

// ColumnInfo is one column of a TableInfo, in ordinal order.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Comment  string `json:"comment,omitempty"`
	Nullable bool   `json:"nullable"`
}
