package model

// TemplateEngine selects the typesetter binary used to compile a template.
type TemplateEngine string

const (
	EnginePDFLaTeX TemplateEngine = "pdflatex"
	EngineXeLaTeX  TemplateEngine = "xelatex"
)

// TemplateDescriptor describes one resume template. Templates are loaded
// once per engine instance and are immutable from the engine's view; the
// template body itself lives in the object store under ObjectKey.
type TemplateDescriptor struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ObjectKey  string         `json:"object_key"`
	PreviewKey string         `json:"preview_key,omitempty"`
	SinglePage bool           `json:"single_page"`
	Active     bool           `json:"active"`
	Engine     TemplateEngine `json:"engine"`
}
