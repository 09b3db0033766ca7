package align

import (
	"strings"

	"sqlalign/internal/core"
)

// prefixMargin is added to the longest prefix so the IS keywords line up
// with some breathing room.
const prefixMargin = 2

// FindComments returns every COMMENT ON TABLE / COMMENT ON COLUMN statement
// in text, split at the IS keyword.
func FindComments(text string, opts core.AlignOptions) []core.CommentHeader {
	re := patternsFor(opts.CaseSensitive).comment
	var out []core.CommentHeader
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, core.CommentHeader{Prefix: m[1], Body: m[2]})
	}
	return out
}

// AlignComments pads every comment statement so the IS keywords share one
// column across the whole text, and wraps single-line bodies to
// opts.WrapWidth. Bodies that already span lines are left as written.
func AlignComments(text string, opts core.AlignOptions) string {
	headers := FindComments(text, opts)
	if len(headers) == 0 {
		return text
	}

	maxLen := 0
	for _, h := range headers {
		maxLen = max(maxLen, width(h.Prefix))
	}
	maxLen += prefixMargin

	re := patternsFor(opts.CaseSensitive).comment
	return replaceAllSubmatchFunc(re, text, func(g []string) string {
		return renderComment(core.CommentHeader{Prefix: g[1], Body: g[2]}, maxLen, opts.WrapWidth)
	})
}

func renderComment(h core.CommentHeader, prefixWidth, wrapWidth int) string {
	body := h.Body
	if !strings.Contains(body, "\n") {
		body = strings.Join(Wrap(body, wrapWidth), "\n")
	}
	return pad(h.Prefix, prefixWidth) + " IS '" + body + "';"
}
