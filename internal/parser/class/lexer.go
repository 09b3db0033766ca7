package class

import "strings"

// kind classifies a byte of source text.
type kind uint8

const (
	kindCode kind = iota
	kindComment
	kindLiteral
)

type span struct {
	start, end int
	doc        bool
}

// source is a lexed view of a declaration. masked has the same byte offsets
// as text but every comment and literal body replaced by spaces, so brace
// matching and keyword searches never see their contents.
type source struct {
	text     string
	masked   string
	kinds    []kind
	comments []span
}

func lex(text string) *source {
	n := len(text)
	kinds := make([]kind, n)
	var comments []span

	mark := func(from, to int, k kind) {
		for i := from; i < to && i < n; i++ {
			kinds[i] = k
		}
	}

	for i := 0; i < n; {
		switch {
		case hasPrefixAt(text, i, "//"):
			end := i
			for end < n && text[end] != '\n' {
				end++
			}
			mark(i, end, kindComment)
			comments = append(comments, span{start: i, end: end})
			i = end
		case hasPrefixAt(text, i, "/*"):
			end := indexFrom(text, i+2, "*/")
			if end < 0 {
				end = n
			} else {
				end += 2
			}
			mark(i, end, kindComment)
			doc := hasPrefixAt(text, i, "/**") && end-i > 4
			comments = append(comments, span{start: i, end: end, doc: doc})
			i = end
		case hasPrefixAt(text, i, `"""`):
			end := indexFrom(text, i+3, `"""`)
			if end < 0 {
				end = n
			}
			mark(i+3, end, kindLiteral)
			i = min(end+3, n)
		case text[i] == '"' || text[i] == '\'':
			q := text[i]
			end := i + 1
			for end < n && text[end] != q && text[end] != '\n' {
				if text[end] == '\\' {
					end++
				}
				end++
			}
			end = min(end, n)
			mark(i+1, end, kindLiteral)
			i = min(end+1, n)
		default:
			i++
		}
	}

	masked := []byte(text)
	for i, k := range kinds {
		if k != kindCode && masked[i] != '\n' {
			masked[i] = ' '
		}
	}

	return &source{text: text, masked: string(masked), kinds: kinds, comments: comments}
}

func (s *source) isCode(i int) bool {
	return i >= 0 && i < len(s.kinds) && s.kinds[i] == kindCode
}

// commentEnd returns the end offset of the comment containing i, or i+1.
func (s *source) commentEnd(i int) int {
	for _, c := range s.comments {
		if i >= c.start && i < c.end {
			return c.end
		}
	}
	return i + 1
}

// members returns the text between the braces opening at open, with every
// nested block blanked out. Only top-level member declarations remain, with
// their comments intact.
func (s *source) members(open int) string {
	depth := 0
	out := make([]byte, 0, len(s.text)-open)
	for i := open; i < len(s.text); i++ {
		c := s.masked[i]
		if s.isCode(i) {
			switch c {
			case '{':
				depth++
				if depth == 1 {
					continue
				}
			case '}':
				depth--
				if depth == 0 {
					return string(out)
				}
			}
		}
		if depth > 1 && s.text[i] != '\n' {
			out = append(out, ' ')
			continue
		}
		out = append(out, s.text[i])
	}
	return string(out)
}

func hasPrefixAt(s string, i int, prefix string) bool {
	return strings.HasPrefix(s[i:], prefix)
}

func indexFrom(s string, from int, sub string) int {
	if from > len(s) {
		return -1
	}
	if i := strings.Index(s[from:], sub); i >= 0 {
		return from + i
	}
	return -1
}
