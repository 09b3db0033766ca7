package class

import (
	"regexp"
	"strings"

	"sqlalign/internal/core"
)

var fieldRe = regexp.MustCompile(`(/\*\*(?:[^*]|\*+[^*/])*\*+/)?\s*` +
	`((?:@[A-Za-z_][\w.]*(?:\s*\((?:[^()]|\([^()]*\))*\))?\s*)*)` +
	`((?:(?:public|protected|private|static|final|transient|volatile)\s+)*)` +
	`([A-Za-z_$][\w$.]*(?:\s*<[^;=(){}]*>)?(?:\s*\[\s*\])*)` +
	`\s+([A-Za-z_$][\w$]*)\s*(?:=[^;]*)?;`)

// statement keywords that the field pattern would otherwise read as a type.
var notTypes = map[string]bool{
	"return":   true,
	"throw":    true,
	"new":      true,
	"else":     true,
	"case":     true,
	"break":    true,
	"continue": true,
	"yield":    true,
	"goto":     true,
	"assert":   true,
	"package":  true,
	"import":   true,
}

// RegexScanner scans member text linearly for
//
//	[doc comment] [annotations] [modifiers] Type name [= initializer];
//
// Static fields are skipped. Matches starting inside a comment are rejected.
type RegexScanner struct{}

// Scan implements FieldScanner.
func (RegexScanner) Scan(members string) []core.Field {
	s := lex(members)
	var fields []core.Field

	for pos := 0; pos < len(members); {
		m := fieldRe.FindStringSubmatchIndex(members[pos:])
		if m == nil {
			break
		}
		for i := range m {
			if m[i] >= 0 {
				m[i] += pos
			}
		}

		typeStart := m[8]
		if !s.isCode(typeStart) {
			pos = s.commentEnd(typeStart)
			continue
		}
		pos = m[1]

		typ := strings.TrimSpace(members[m[8]:m[9]])
		if notTypes[typ] || hasModifier(members[m[6]:m[7]], "static") {
			continue
		}

		f := core.Field{
			Type: collapseSpace(typ),
			Name: members[m[10]:m[11]],
		}
		if m[2] >= 0 {
			f.Comment = ReduceComment(members[m[2]:m[3]])
		}
		fields = append(fields, f)
	}

	return fields
}

func hasModifier(modifiers, want string) bool {
	for _, m := range strings.Fields(modifiers) {
		if m == want {
			return true
		}
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
