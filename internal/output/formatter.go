// Package output renders statistics, batch reports and introspected tables for the terminal or
// for machines. It provides three formats: text, table and JSON.
package output

import (
	"fmt"
	"strings"

	"sqlalign/internal/core"
)

// Format is an enum type representing the available output formats.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formatter is an interface for formatting statistics, batch reports and
// introspected tables.
type Formatter interface {
	FormatStats(core.Stats) (string, error)
	FormatBatch(*core.BatchReport) (string, error)
	FormatTableInfo(*core.TableInfo) (string, error)
}

// NewFormatter creates a new Formatter instance based on the given name.
// If no format is specified, defaults to text format.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatText:
		return textFormatter{}, nil
	case FormatTable:
		return tableFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s; use 'text', 'table', or 'json'", name)
	}
}
