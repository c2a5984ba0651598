package editorjs

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// The two text-cleaning policies. Policies are immutable after construction
// and safe for concurrent use, so they are built once at package init.
var (
	richPolicy  = newRichPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// newRichPolicy builds the allow-list for user-authored rich text: the
// inline formatting tags the editor itself produces, plus the attributes
// the block renderers rely on. Everything else is stripped while the text
// content is kept.
func newRichPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("a", "b", "br", "code", "del", "i", "mark", "s", "span", "u")
	p.AllowAttrs("class", "data-placeholder", "data-text", "data-title", "href").Globally()
	return p
}

// SanitizeRich cleans user-authored rich text, keeping the inline-tag
// allow-list {a, b, br, code, del, i, mark, s, span, u} and the attributes
// {class, data-placeholder, data-text, data-title, href} on any kept tag.
// Disallowed markup is stripped; its text content survives. Malformed or
// unbalanced input degrades to best-effort stripped text; SanitizeRich
// never fails.
func SanitizeRich(s string) string {
	return richPolicy.Sanitize(s)
}

// SanitizePlain reduces rich text to plain text: the <br> line-break
// placeholder becomes a literal newline, then all remaining markup is
// stripped. Like SanitizeRich it never fails.
func SanitizePlain(s string) string {
	return plainPolicy.Sanitize(strings.ReplaceAll(s, "<br>", "\n"))
}

// attrEscape makes a caller-controlled value safe to interpolate into an
// attribute or class-name position. This is deliberately escaping, not
// sanitization: valid values pass through unchanged.
func attrEscape(s string) string {
	return html.EscapeString(s)
}
