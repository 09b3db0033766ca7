// Package class extracts a lightweight declaration model from class-like
// source text: the type name, the table and sequence names given by
// annotations, the leading doc comment and the field declarations.
//
// This is pattern matching, not a compiler front end. Anything it does not
// recognize is skipped.
package class

import (
	"errors"
	"regexp"
	"strings"

	"sqlalign/internal/core"
)

// ErrNoTypeName is returned when no class, interface, record or enum header
// can be found.
var ErrNoTypeName = errors.New("class: no type name found")

var (
	headerRe   = regexp.MustCompile(`\b(?:class|interface|record|enum)\s+([A-Za-z_$][\w$]*)`)
	tableRe    = regexp.MustCompile(`@(?:TableName|Table)\s*\(\s*(?:(?:value|name)\s*=\s*)?"([^"]*)"`)
	sequenceRe = regexp.MustCompile(`@KeySequence\s*\(\s*(?:value\s*=\s*)?"([^"]*)"`)

	// preludeRe matches what may sit between a doc comment and the header
	// it documents, with comments and literals already masked.
	preludeRe = regexp.MustCompile(`^(?:\s+|@[A-Za-z_][\w.]*(?:\s*\((?:[^()]|\([^()]*\))*\))?|\b(?:public|protected|private|abstract|final|static|sealed|strictfp)\b|non-sealed)*$`)
)

// FieldScanner finds field declarations in the member text of a class
// body. Nested blocks have already been blanked out when Scan is called.
type FieldScanner interface {
	Scan(members string) []core.Field
}

// Parser turns declaration text into a core.Declaration.
type Parser struct {
	Scanner FieldScanner
}

// NewParser returns a Parser using the RegexScanner.
func NewParser() *Parser {
	return &Parser{Scanner: RegexScanner{}}
}

// Parse extracts a declaration from src.
func (p *Parser) Parse(src string) (*core.Declaration, error) {
	s := lex(src)

	loc := headerRe.FindStringSubmatchIndex(s.masked)
	if loc == nil {
		return nil, ErrNoTypeName
	}

	decl := &core.Declaration{
		TypeName:     src[loc[2]:loc[3]],
		TableName:    annotationValue(s, tableRe, loc[0]),
		SequenceName: annotationValue(s, sequenceRe, loc[0]),
		Comment:      leadingComment(s, loc[0]),
	}

	scanner := p.Scanner
	if scanner == nil {
		scanner = RegexScanner{}
	}

	if open := strings.IndexByte(s.masked[loc[1]:], '{'); open >= 0 {
		decl.Fields = scanner.Scan(s.members(loc[1] + open))
	} else {
		decl.Fields = scanner.Scan(src[loc[1]:])
	}
	if decl.Fields == nil {
		decl.Fields = []core.Field{}
	}

	return decl, nil
}

// annotationValue returns the first value re captures in code before limit.
func annotationValue(s *source, re *regexp.Regexp, limit int) string {
	for _, m := range re.FindAllStringSubmatchIndex(s.text[:limit], -1) {
		if !s.isCode(m[0]) {
			continue
		}
		return strings.TrimSpace(s.text[m[2]:m[3]])
	}
	return ""
}

// leadingComment returns the reduced doc comment that directly precedes the
// header at offset header, allowing annotations and modifiers in between.
func leadingComment(s *source, header int) string {
	var doc *span
	for i := range s.comments {
		c := &s.comments[i]
		if c.end > header {
			break
		}
		if c.doc {
			doc = c
		}
	}
	if doc == nil || !preludeRe.MatchString(s.masked[doc.end:header]) {
		return ""
	}
	return ReduceComment(s.text[doc.start:doc.end])
}
