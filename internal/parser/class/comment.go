package class

import "strings"

// ReduceComment turns a raw doc comment into its first descriptive line:
// delimiters and leading asterisks are stripped, and tag lines such as
// "@author" are ignored. It returns "" when nothing remains.
func ReduceComment(raw string) string {
	body := strings.TrimSpace(raw)
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimPrefix(body, "/*")
	body = strings.TrimSuffix(body, "*/")

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimLeft(line, " \t\r*")
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		return line
	}
	return ""
}
