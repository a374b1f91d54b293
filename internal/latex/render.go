package latex

import (
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/RohitSen1235/resumegen/internal/model"
)

// ErrRenderFailed is returned when template interpolation fails.
var ErrRenderFailed = errors.New("latex: template render failed")

// Template delimiters. LaTeX owns braces, percent signs and backslashes,
// so the engine uses bracket pairs that never appear in typesetter syntax:
// expressions and control actions are both written [[ ... ]], comments
// [# ... #]. A separate [% ... %] block form is deliberately not supported;
// template bodies containing it are rejected rather than rendered with the
// markers passed through literally. Auto-escaping is off; every value in
// the rendering model is escaped before it reaches the engine.
const (
	delimLeft  = "[["
	delimRight = "]]"

	commentOpen  = "[#"
	commentClose = "#]"

	blockOpen = "[%"
)

// RenderTemplate interpolates the rendering model into a template body.
func RenderTemplate(name, body string, rm model.RenderingModel) (string, error) {
	body = stripComments(body)

	if strings.Contains(body, blockOpen) {
		return "", fmt.Errorf("%w: parse %s: block delimiters %s %%] are not supported, use %s %s",
			ErrRenderFailed, name, blockOpen, delimLeft, delimRight)
	}

	tmpl, err := template.New(name).Delims(delimLeft, delimRight).Parse(body)
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, rm); err != nil {
		return "", fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, name, err)
	}
	return out.String(), nil
}

// stripComments removes [# ... #] comment blocks before parsing.
func stripComments(body string) string {
	for {
		start := strings.Index(body, commentOpen)
		if start < 0 {
			return body
		}
		end := strings.Index(body[start:], commentClose)
		if end < 0 {
			return body[:start]
		}
		body = body[:start] + body[start+end+len(commentClose):]
	}
}
