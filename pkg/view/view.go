package view

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"maps"
	"slices"
	"sync"

	"github.com/a-h/templ"
)

// Func builds a component from the locals of a step.
type Func func(locals map[string]any) templ.Component

// Registry maps template names to components. It satisfies the renderer
// the wizard controllers expect.
type Registry struct {
	mu       sync.RWMutex
	views    map[string]Func
	fallback string
}

// Option configures a Registry during construction.
type Option func(*Registry) error

// New creates a registry with the given options.
func New(opts ...Option) (*Registry, error) {
	r := &Registry{views: make(map[string]Func)}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// WithView registers fn under name.
func WithView(name string, fn Func) Option {
	return func(r *Registry) error {
		return r.Register(name, fn)
	}
}

// WithFallback renders name for steps whose template is not registered,
// so one generic step page can serve every simple step.
func WithFallback(name string) Option {
	return func(r *Registry) error {
		r.fallback = name
		return nil
	}
}

// WithTemplates registers every named template of t.
func WithTemplates(t *template.Template) Option {
	return func(r *Registry) error {
		for _, tmpl := range t.Templates() {
			name := tmpl.Name()
			if name == "" || tmpl.Tree == nil {
				continue
			}
			if err := r.Register(name, HTML(t, name)); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithFS parses the html/template files matching patterns in fsys and
// registers their templates.
//
//	view.New(view.WithFS(os.DirFS("views"), "*.html", "steps/*.html"))
func WithFS(fsys fs.FS, patterns ...string) Option {
	return func(r *Registry) error {
		t, err := template.New("").ParseFS(fsys, patterns...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrParse, err)
		}
		return WithTemplates(t)(r)
	}
}

// Register adds a template.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.views[name] = fn
	return nil
}

// Component returns the component of name built from locals.
func (r *Registry) Component(name string, locals map[string]any) (templ.Component, error) {
	r.mu.RLock()
	fn, ok := r.views[name]
	if !ok && r.fallback != "" {
		fn, ok = r.views[r.fallback]
	}
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return fn(locals), nil
}

// Names returns the registered template names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.views))
}

// HTML adapts the html/template name of t to a Func. The locals are the
// template data.
func HTML(t *template.Template, name string) Func {
	return func(locals map[string]any) templ.Component {
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			return t.ExecuteTemplate(w, name, locals)
		})
	}
}

// Static ignores the locals and always renders c.
func Static(c templ.Component) Func {
	return func(map[string]any) templ.Component {
		return c
	}
}
