// Package parser reads declaration files from disk and hands them to the
// parser that understands their format.
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sqlalign/internal/core"
	"sqlalign/internal/parser/class"
	"sqlalign/internal/parser/toml"
)

type Parser interface {
	Parse(src string) (*core.Declaration, error)
}

// ForPath returns the parser for the file's extension.
func ForPath(path string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java", ".txt":
		return class.NewParser(), nil
	case ".toml":
		return toml.NewParser(), nil
	default:
		return nil, &UnsupportedFormatError{Path: path}
	}
}

// ParseFile reads path and parses it with the parser for its extension.
func ParseFile(path string) (*core.Declaration, error) {
	p, err := ForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: read file %q: %w", path, err)
	}

	decl, err := p.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parser: %s: %w", path, err)
	}
	return decl, nil
}

type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return "unsupported file format: " + e.Path
}
