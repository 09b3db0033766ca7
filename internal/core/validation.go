package core

import (
	"fmt"
	"strings"
)

// ValidationError describes a declaration that can be rendered but would
// produce a script the database is likely to reject.
type ValidationError struct {
	Entity  string
	Name    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s %q field %q: %s", e.Entity, e.Name, e.Field, e.Message)
	}
	return fmt.Sprintf("validation error in %s %q: %s", e.Entity, e.Name, e.Message)
}

// Validate checks the declaration and returns the first problem found.
// Field names are compared case-insensitively because most databases fold
// unquoted identifiers.
func (d *Declaration) Validate() error {
	if d == nil {
		return &ValidationError{Entity: "declaration", Message: "declaration is nil"}
	}
	if strings.TrimSpace(d.TypeName) == "" {
		return &ValidationError{Entity: "declaration", Name: "(empty)", Message: "type name is empty"}
	}
	if d.HasTableName() && strings.ContainsAny(d.TableName, " \t\r\n") {
		return &ValidationError{Entity: "declaration", Name: d.TypeName, Field: "TableName", Message: fmt.Sprintf("table name %q contains whitespace", d.TableName)}
	}
	if len(d.Fields) == 0 {
		return &ValidationError{Entity: "declaration", Name: d.TypeName, Message: "declaration has no fields"}
	}

	seen := make(map[string]bool, len(d.Fields))
	for i, f := range d.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
		nameLower := strings.ToLower(f.Name)
		if seen[nameLower] {
			return &ValidationError{Entity: "declaration", Name: d.TypeName, Message: fmt.Sprintf("duplicate field name %q at index %d", f.Name, i)}
		}
		seen[nameLower] = true
	}
	return nil
}

// Validate checks a single field.
func (f Field) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Entity: "field", Name: "(empty)", Message: "field name is empty"}
	}
	if strings.TrimSpace(f.Type) == "" {
		return &ValidationError{Entity: "field", Name: f.Name, Field: "Type", Message: "field type is empty"}
	}
	return nil
}
