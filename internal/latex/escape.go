// Package latex turns constructor output into a typeset PDF: it parses the
// section grammar, escapes user data, renders a template and drives the
// external typesetter.
package latex

import (
	"regexp"
	"strings"
)

// Backslash is rewritten through a placeholder: its replacement introduces
// braces that must survive the brace escapes that follow.
const backslashMark = "\x00BS\x00"

// escaper applies the ordered single-character replacements. The order is
// load-bearing: backslash first, braces before the placeholder is resolved.
var escaper = []struct{ from, to string }{
	{`\`, backslashMark},
	{`&`, `\&`},
	{`%`, `\%`},
	{`$`, `\$`},
	{`#`, `\#`},
	{`_`, `\_`},
	{`{`, `\{`},
	{`}`, `\}`},
	{`^`, `\^{}`},
	{`~`, `\~{}`},
	{`<`, `\textless{}`},
	{`>`, `\textgreater{}`},
	{`|`, `\textbar{}`},
	{"`", `\textasciigrave{}`},
	{`'`, `\textquotesingle{}`},
	{`"`, `\textquotedbl{}`},
	{`©`, `\textcopyright{}`},
	{`®`, `\textregistered{}`},
	{`™`, `\texttrademark{}`},
	{`£`, `\pounds{}`},
	{`€`, `\euro{}`},
	{`¥`, `\textyen{}`},
	{`§`, `\S{}`},
	{`¶`, `\P{}`},
	{backslashMark, `\textbackslash{}`},
}

var multiSpace = regexp.MustCompile(`[ \t]{2,}`)

// Escape rewrites s so the typesetter renders every character literally.
// Newlines become hard breaks and runs of whitespace collapse to a single
// space.
func Escape(s string) string {
	for _, r := range escaper {
		s = strings.ReplaceAll(s, r.from, r.to)
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", ` \\ `)
	s = multiSpace.ReplaceAllString(s, " ")
	return s
}

// EscapeAll escapes each element of a string slice.
func EscapeAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = Escape(s)
	}
	return out
}
