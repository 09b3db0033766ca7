// Package toml reads a declaration written as TOML instead of as a class.
// It is the format to use when there is no source file to point at:
//
//	[declaration]
//	type = "PostDO"
//	table = "system_post"
//	sequence = "system_post_seq"
//	comment = "Post"
//
//	[[fields]]
//	name = "id"
//	type = "Long"
//	comment = "Post ID"
package toml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"sqlalign/internal/core"
)

// ErrNoTypeName is returned when [declaration] has no type.
var ErrNoTypeName = errors.New("toml: declaration.type is required")

// declarationFile is the top-level TOML document.
type declarationFile struct {
	Declaration tomlDeclaration `toml:"declaration"`
	Fields      []tomlField     `toml:"fields"`
}

// tomlDeclaration maps [declaration].
type tomlDeclaration struct {
	Type     string `toml:"type"`
	Table    string `toml:"table"`
	Sequence string `toml:"sequence"`
	Comment  string `toml:"comment"`
}

// tomlField maps [[fields]].
type tomlField struct {
	Name    string `toml:"name"`
	Type    string `toml:"type"`
	Comment string `toml:"comment"`
}

// Parser reads TOML declaration files.
type Parser struct{}

// NewParser creates a new TOML declaration parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes src and returns the corresponding core.Declaration.
func (p *Parser) Parse(src string) (*core.Declaration, error) {
	return p.ParseReader(strings.NewReader(src))
}

// ParseReader is Parse for a reader.
func (p *Parser) ParseReader(r io.Reader) (*core.Declaration, error) {
	var df declarationFile
	md, err := toml.NewDecoder(r).Decode(&df)
	if err != nil {
		return nil, fmt.Errorf("toml: decode error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("toml: unknown keys: %s", strings.Join(keys, ", "))
	}

	return convert(&df)
}

func convert(df *declarationFile) (*core.Declaration, error) {
	d := df.Declaration
	if strings.TrimSpace(d.Type) == "" {
		return nil, ErrNoTypeName
	}

	decl := &core.Declaration{
		TypeName:     strings.TrimSpace(d.Type),
		TableName:    strings.TrimSpace(d.Table),
		SequenceName: strings.TrimSpace(d.Sequence),
		Comment:      strings.TrimSpace(d.Comment),
		Fields:       make([]core.Field, 0, len(df.Fields)),
	}

	for i, f := range df.Fields {
		field, err := convertField(f)
		if err != nil {
			return nil, fmt.Errorf("toml: fields[%d]: %w", i, err)
		}
		decl.Fields = append(decl.Fields, field)
	}

	return decl, nil
}

func convertField(f tomlField) (core.Field, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return core.Field{}, errors.New("name is required")
	}
	typ := strings.Join(strings.Fields(f.Type), " ")
	if typ == "" {
		return core.Field{}, fmt.Errorf("field %q: type is required", name)
	}
	return core.Field{
		Type:    typ,
		Name:    name,
		Comment: strings.TrimSpace(f.Comment),
	}, nil
}
