package runtime

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/localsettings/internal/logging"
	"github.com/aretw0/localsettings/pkg/domain"
	"github.com/aretw0/localsettings/pkg/view"
)

// Emitter receives the changes fields emit. The reducer lives outside the page.
type Emitter func(domain.Change)

// PageFunc renders a page. It is pure given the snapshot and the emitter.
type PageFunc func(settings domain.Settings, emit Emitter) *RenderedPage

// RenderedPage is a page view bound to the snapshot it was rendered from.
type RenderedPage struct {
	View view.Page

	settings domain.Settings
	fields   map[string]domain.FieldDescriptor
	emit     Emitter
}

// Interact routes an interaction to one of the page's fields and emits the
// resulting change.
func (p *RenderedPage) Interact(fieldID string, in view.Input) (domain.Change, error) {
	d, ok := p.fields[fieldID]
	if !ok {
		return domain.Change{}, fmt.Errorf("%w: %s", domain.ErrUnknownField, fieldID)
	}
	change, err := Interact(p.settings, d, in)
	if err != nil {
		return domain.Change{}, err
	}
	if p.emit != nil {
		p.emit(change)
	}
	return change, nil
}

func newPageFunc(index int, def pageDef) PageFunc {
	return func(settings domain.Settings, emit Emitter) *RenderedPage {
		page := view.Page{
			ID:       def.id,
			Index:    index,
			Title:    def.title,
			Sections: make([]view.Section, len(def.sections)),
		}
		fields := make(map[string]domain.FieldDescriptor)
		for i, sec := range def.sections {
			controls := make([]view.Control, len(sec.fields))
			for j, d := range sec.fields {
				controls[j] = BuildControl(settings, d)
				fields[d.ID] = d
			}
			page.Sections[i] = view.Section{Title: sec.title, Controls: controls}
		}
		return &RenderedPage{
			View:     page,
			settings: settings,
			fields:   fields,
			emit:     emit,
		}
	}
}

// Renderer dispatches a page index to its page function.
type Renderer struct {
	order  []PageID
	pages  map[PageID]PageFunc
	column PageFunc
	fields map[string]domain.FieldDescriptor
	logger *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used for fallback diagnostics.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer builds the renderer of the settings dialog pages.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		order:  pageOrder,
		pages:  make(map[PageID]PageFunc, len(pageOrder)),
		fields: make(map[string]domain.FieldDescriptor),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for i, id := range r.order {
		def := pageDefs[id]
		r.pages[id] = newPageFunc(i, def)
		for _, d := range def.fields() {
			r.fields[d.ID] = d
		}
	}
	r.column = newPageFunc(0, homeColumnDef)
	for _, d := range homeColumnDef.fields() {
		r.fields[d.ID] = d
	}
	return r
}

// Len returns the number of dialog pages.
func (r *Renderer) Len() int { return len(r.order) }

// Pages returns the page identifiers in navigation order.
func (r *Renderer) Pages() []PageID {
	out := make([]PageID, len(r.order))
	copy(out, r.order)
	return out
}

// Render renders the page at index, falling back to the first page when the
// index is out of range.
func (r *Renderer) Render(index int, settings domain.Settings, emit Emitter) *RenderedPage {
	if index < 0 || index >= len(r.order) {
		r.logger.Debug("page index out of range, rendering first page", "index", index, "pages", len(r.order))
		index = 0
	}
	return r.pages[r.order[index]](settings, emit)
}

// RenderColumn renders the home column settings panel.
func (r *Renderer) RenderColumn(settings domain.Settings, emit Emitter) *RenderedPage {
	return r.column(settings, emit)
}

// Field looks up a descriptor by id across every page and the column panel.
func (r *Renderer) Field(id string) (domain.FieldDescriptor, bool) {
	d, ok := r.fields[id]
	return d, ok
}

// Descriptors returns the title and field descriptors of the page at index,
// with the same fallback as Render.
func (r *Renderer) Descriptors(index int) (string, []domain.FieldDescriptor) {
	if index < 0 || index >= len(r.order) {
		index = 0
	}
	def := pageDefs[r.order[index]]
	return def.title, def.fields()
}
