// Package mapper converts source identifiers and types into SQL column
// names, types, constraints and defaults for a target dialect.
package mapper

import (
	"regexp"
	"strings"
)

var (
	// wordStartRe finds a capitalised word ("Time" in "createTime").
	wordStartRe = regexp.MustCompile(`(.)([A-Z][a-z]+)`)
	// caseChangeRe finds a lower-case letter or digit followed by an upper-case one.
	caseChangeRe = regexp.MustCompile(`([a-z0-9])([A-Z])`)
)

// ConvertNaming turns a camelCase or PascalCase identifier into
// lower-case snake_case: "tenantId" -> "tenant_id", "HTTPServer" ->
// "http_server". Already separated lower-case names are returned unchanged.
func ConvertNaming(name string) string {
	s := wordStartRe.ReplaceAllString(name, "${1}_${2}")
	s = caseChangeRe.ReplaceAllString(s, "${1}_${2}")
	s = strings.ToLower(s)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return s
}

// TableName derives a table name from a type name, dropping a trailing
// "DO" (data object) marker first: "UserProfileDO" -> "user_profile".
func TableName(typeName string) string {
	base := strings.TrimSpace(typeName)
	if trimmed := strings.TrimSuffix(base, "DO"); trimmed != "" {
		base = trimmed
	}
	return ConvertNaming(base)
}
