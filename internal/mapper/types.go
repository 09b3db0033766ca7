package mapper

import (
	"strings"

	"sqlalign/internal/core"
	"sqlalign/internal/dialect"
)

const (
	notNull          = "NOT NULL"
	currentTimestamp = "CURRENT_TIMESTAMP"
)

// Rule is one field-name heuristic. Match receives the snake_case field
// name; Apply receives the type-table result and returns the replacement.
type Rule struct {
	Name  string
	Match func(name string) bool
	Apply func(d *dialect.Dialect, m core.TypeMapping) core.TypeMapping
}

// Rules is evaluated top to bottom and the first match wins.
var Rules = []Rule{
	{
		Name:  "primary key",
		Match: oneOf("id", "uid"),
		Apply: func(d *dialect.Dialect, _ core.TypeMapping) core.TypeMapping {
			return core.TypeMapping{SQLType: d.KeyType, Constraints: d.KeyConstraints}
		},
	},
	{
		Name:  "tenant",
		Match: oneOf("tenant_id"),
		Apply: func(d *dialect.Dialect, _ core.TypeMapping) core.TypeMapping {
			return core.TypeMapping{SQLType: d.BigIntType, Constraints: notNull, Default: "0"}
		},
	},
	{
		Name:  "contact",
		Match: containsAny("email", "phone", "password"),
		Apply: func(d *dialect.Dialect, m core.TypeMapping) core.TypeMapping {
			m.SQLType = d.String(100)
			return m
		},
	},
	{
		Name:  "name",
		Match: oneOf("name"),
		Apply: func(_ *dialect.Dialect, m core.TypeMapping) core.TypeMapping {
			m.Constraints = notNull
			return m
		},
	},
	{
		Name:  "code",
		Match: oneOf("code"),
		Apply: func(d *dialect.Dialect, m core.TypeMapping) core.TypeMapping {
			return core.TypeMapping{SQLType: d.String(64), Constraints: notNull, Default: m.Default}
		},
	},
	{
		Name:  "description",
		Match: oneOf("description"),
		Apply: func(d *dialect.Dialect, m core.TypeMapping) core.TypeMapping {
			m.SQLType = d.String(500)
			return m
		},
	},
	{
		Name:  "status",
		Match: oneOf("status", "sort"),
		Apply: func(d *dialect.Dialect, _ core.TypeMapping) core.TypeMapping {
			return core.TypeMapping{SQLType: d.IntType, Constraints: notNull, Default: "0"}
		},
	},
	{
		Name:  "auditor",
		Match: oneOf("creator", "updater"),
		Apply: func(d *dialect.Dialect, m core.TypeMapping) core.TypeMapping {
			m.SQLType = d.String(64)
			return m
		},
	},
	{
		Name:  "audit time",
		Match: oneOf("create_time", "update_time"),
		Apply: func(d *dialect.Dialect, _ core.TypeMapping) core.TypeMapping {
			return core.TypeMapping{SQLType: d.TimestampType, Constraints: notNull, Default: currentTimestamp}
		},
	},
	{
		Name:  "soft delete",
		Match: oneOf("deleted"),
		Apply: func(d *dialect.Dialect, _ core.TypeMapping) core.TypeMapping {
			return core.TypeMapping{SQLType: d.SmallIntType, Constraints: notNull, Default: "0"}
		},
	},
}

// MapType maps a source type and field name onto a SQL type, constraints
// and default for dialect t. Type parameters ("List<String>") are ignored;
// unknown types become a bounded string. The field name may be in either
// naming convention.
func MapType(sourceType, fieldName string, t dialect.Type) core.TypeMapping {
	d := dialect.GetDialect(t)
	sqlType, _ := d.LookupType(BaseType(sourceType))
	m := core.TypeMapping{SQLType: sqlType}

	if r := MatchRule(fieldName); r != nil {
		return r.Apply(d, m)
	}
	return m
}

// MatchRule returns the first rule matching fieldName, or nil.
func MatchRule(fieldName string) *Rule {
	name := ConvertNaming(strings.TrimSpace(fieldName))
	for i := range Rules {
		if Rules[i].Match(name) {
			return &Rules[i]
		}
	}
	return nil
}

// BaseType strips a bracketed type parameter and any package qualifier:
// "List<Long>" -> "List", "java.time.LocalDate" -> "LocalDate".
func BaseType(sourceType string) string {
	s := strings.TrimSpace(sourceType)
	if i := strings.IndexByte(s, '<'); i >= 0 {
		rest := ""
		if j := strings.LastIndexByte(s, '>'); j > i {
			rest = s[j+1:]
		}
		s = strings.TrimSpace(s[:i]) + strings.TrimSpace(rest)
	}
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

func oneOf(names ...string) func(string) bool {
	return func(name string) bool {
		for _, n := range names {
			if name == n {
				return true
			}
		}
		return false
	}
}

func containsAny(parts ...string) func(string) bool {
	return func(name string) bool {
		for _, p := range parts {
			if strings.Contains(name, p) {
				return true
			}
		}
		return false
	}
}
