// Package formatter normalises submitted form values before validation.
//
// A formatter is a named transform. Transforms are looked up in a [Registry]
// and applied in order; unknown names are skipped so that a typo in
// configuration never breaks a step. String transforms return non-string
// values unchanged.
//
// [Engine] composes the step-wide default transforms with each field's own
// list:
//
//	engine := formatter.New(fields, formatter.DefaultNames, formatter.NewRegistry())
//	engine.Format("name", "  jane   doe ") // "jane doe" with defaults [trim singlespaces hyphens]
//	engine.Empty("subscribe")              // the field's representation of an empty input
//
// Slice input is formatted element by element; a single element result is
// unwrapped so a repeated input with one value behaves like a plain input.
package formatter

import (
	"errors"
	"slices"
	"sync"

	"github.com/dmitrymomot/formwizard/pkg/field"
)

// Func transforms a single submitted value.
type Func func(value any) any

// DefaultNames are the transforms applied to every field unless it opts out.
var DefaultNames = []string{"trim", "singlespaces", "hyphens"}

var (
	ErrEmptyName = errors.New("formatter: name cannot be empty")
	ErrNilFunc   = errors.New("formatter: func cannot be nil")
)

// Registry maps transform names to functions.
// It is safe for concurrent use; registration only adds or replaces entries.
type Registry struct {
	funcs map[string]Func
	mu    sync.RWMutex
}

// NewRegistry returns a registry holding the built-in transforms.
func NewRegistry() *Registry {
	r := &Registry{funcs: make(map[string]Func, len(builtins))}
	for name, fn := range builtins {
		r.funcs[name] = fn
	}
	return r
}

// Register adds or replaces a transform.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilFunc
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Lookup returns the transform registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns registered transform names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Format applies the named transforms to value in order, skipping unknown names.
func Format(r *Registry, names []string, value any) any {
	for _, name := range names {
		if fn, ok := r.Lookup(name); ok {
			value = fn(value)
		}
	}
	return value
}

// Engine formats values of a known set of fields.
type Engine struct {
	registry *Registry
	fields   field.Fields
	defaults []string
}

// New creates an engine. A nil registry uses the built-in transforms.
func New(fields field.Fields, defaults []string, r *Registry) *Engine {
	if r == nil {
		r = NewRegistry()
	}
	return &Engine{
		registry: r,
		fields:   fields,
		defaults: defaults,
	}
}

// Format runs the default transforms (unless the field ignores them) followed
// by the field's own transforms. Keys that are not configured only get defaults.
func (e *Engine) Format(key string, value any) any {
	f, known := e.fields.Get(key)

	items, isList := toList(value)
	if !isList {
		items = []any{value}
	}

	useDefaults := len(e.defaults) > 0 && !(known && f.IgnoreDefaults)
	for i, item := range items {
		if useDefaults {
			item = Format(e.registry, e.defaults, item)
		}
		if known && len(f.Formatter) > 0 {
			item = Format(e.registry, f.Formatter, item)
		}
		items[i] = item
	}

	if len(items) == 1 {
		return items[0]
	}
	return fromList(items)
}

// Empty returns what an empty submission formats to for the given field.
func (e *Engine) Empty(key string) any {
	return e.Format(key, "")
}

func toList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return items, true
	case []any:
		return slices.Clone(v), true
	default:
		return nil, false
	}
}

// fromList returns []string when every element is a string.
func fromList(items []any) any {
	strs := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return items
		}
		strs = append(strs, s)
	}
	return strs
}
