package latex

import (
	"context"
	"errors"
	"fmt"

	"github.com/RohitSen1235/resumegen/internal/model"
	"github.com/RohitSen1235/resumegen/internal/objectstore"
)

// ErrTemplateNotFound is returned when a template id is not in the active
// set or its body is missing from the object store.
var ErrTemplateNotFound = errors.New("latex: template not found")

// DefaultTemplateID is used when a job does not name a template.
const DefaultTemplateID = "classic"

// Registry holds the active template descriptors. Loaded once per engine
// instance; templates are immutable afterwards.
type Registry struct {
	byID map[string]model.TemplateDescriptor
}

// NewRegistry builds a registry from descriptors, keeping only active ones.
func NewRegistry(descriptors []model.TemplateDescriptor) *Registry {
	r := &Registry{byID: make(map[string]model.TemplateDescriptor)}
	for _, d := range descriptors {
		if !d.Active {
			continue
		}
		if d.Engine == "" {
			d.Engine = model.EnginePDFLaTeX
		}
		r.byID[d.ID] = d
	}
	return r
}

// DefaultTemplates is the seeded template set.
func DefaultTemplates() []model.TemplateDescriptor {
	return []model.TemplateDescriptor{
		{
			ID:         "classic",
			Name:       "Classic",
			ObjectKey:  objectstore.TemplateKey("classic"),
			SinglePage: false,
			Active:     true,
			Engine:     model.EnginePDFLaTeX,
		},
		{
			ID:         "compact",
			Name:       "Compact One-Page",
			ObjectKey:  objectstore.TemplateKey("compact"),
			SinglePage: true,
			Active:     true,
			Engine:     model.EnginePDFLaTeX,
		},
		{
			ID:         "modern",
			Name:       "Modern",
			ObjectKey:  objectstore.TemplateKey("modern"),
			SinglePage: true,
			Active:     true,
			Engine:     model.EngineXeLaTeX,
		},
	}
}

// Get returns the descriptor for id, or ErrTemplateNotFound.
func (r *Registry) Get(id string) (model.TemplateDescriptor, error) {
	if id == "" {
		id = DefaultTemplateID
	}
	d, ok := r.byID[id]
	if !ok {
		return model.TemplateDescriptor{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, id)
	}
	return d, nil
}

// LoadBody fetches the template source as UTF-8 text from the object store.
// Absence maps to ErrTemplateNotFound.
func (r *Registry) LoadBody(ctx context.Context, store objectstore.Store, d model.TemplateDescriptor) (string, error) {
	body, err := store.DownloadText(ctx, d.ObjectKey)
	if errors.Is(err, objectstore.ErrNotFound) {
		return "", fmt.Errorf("%w: body missing for %s", ErrTemplateNotFound, d.ID)
	}
	if err != nil {
		return "", fmt.Errorf("latex: load template %s: %w", d.ID, err)
	}
	return body, nil
}
