package validator

import (
	"slices"
	"sync"
	"time"
)

// Func reports whether value is valid. Arguments come from the rule.
type Func func(value any, args ...any) bool

// FieldFunc is a validator that also sees every submitted value of the step.
type FieldFunc func(value any, values map[string]any, args ...any) bool

type entry struct {
	fn      Func
	fieldFn FieldFunc
}

func (e entry) call(value any, values map[string]any, args []any) bool {
	if e.fieldFn != nil {
		return e.fieldFn(value, values, args...)
	}
	return e.fn(value, args...)
}

// Registry maps validator names to predicates.
// It is safe for concurrent use; registration only adds or replaces entries.
type Registry struct {
	entries map[string]entry
	now     func() time.Time
	mu      sync.RWMutex
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock sets the time source used by relative date validators.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRegistry returns a registry holding the built-in validators.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	for name, fn := range builtins(r.now) {
		r.entries[name] = entry{fn: fn}
	}
	for name, fn := range extended {
		r.entries[name] = entry{fn: fn}
	}
	return r
}

// Register adds or replaces a validator.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilFunc
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = entry{fn: fn}
	return nil
}

// RegisterFieldFunc adds or replaces a cross-field validator.
func (r *Registry) RegisterFieldFunc(name string, fn FieldFunc) error {
	if name == "" {
		return ErrEmptyName
	}
	if fn == nil {
		return ErrNilFunc
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = entry{fieldFn: fn}
	return nil
}

// Has reports whether a validator is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.lookup(name)
	return ok
}

// Names returns registered validator names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Check runs a single validator outside of an engine.
func (r *Registry) Check(name string, value any, args ...any) (bool, error) {
	e, ok := r.lookup(name)
	if !ok {
		return false, undefined(name)
	}
	return e.call(value, nil, args), nil
}

func (r *Registry) lookup(name string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}
