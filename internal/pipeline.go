package internal

import (
	"maps"

	"github.com/dmitrymomot/formwizard/pkg/validator"
)

// Form is the state of one request to a step.
type Form struct {
	// Step is a private copy of the step configuration. Stages may change it.
	Step Step

	// Values holds the stored values on GET and the formatted submission on POST.
	Values map[string]any

	// Historical holds the stored values on POST, for forks that depend on
	// earlier steps.
	Historical map[string]any

	// Errors are the stored errors on GET.
	Errors validator.Errors

	// Locals are passed to the template.
	Locals map[string]any

	BaseURL string

	// Edit is set on the "/edit" route of a step.
	Edit bool
}

// Value returns the current value of key, falling back to the stored one.
func (f *Form) Value(key string) any {
	if v, ok := f.Values[key]; ok {
		return v
	}
	return f.Historical[key]
}

// SetLocals adds template locals.
func (f *Form) SetLocals(locals map[string]any) {
	if f.Locals == nil {
		f.Locals = make(map[string]any, len(locals))
	}
	maps.Copy(f.Locals, locals)
}

// StageFunc is one stage of the request pipeline, or a hook run by one.
type StageFunc func(c Context, f *Form) error

type stage struct {
	name string
	run  StageFunc
}

// pipeline runs its stages in order and stops at the first error, which is
// returned unchanged.
type pipeline []stage

func (p pipeline) run(c Context, f *Form) error {
	for _, s := range p {
		c.LogDebug("wizard stage", "stage", s.name)
		if err := s.run(c, f); err != nil {
			return err
		}
	}
	return nil
}

// runHooks runs hooks as one stage.
func runHooks(hooks []StageFunc) StageFunc {
	return func(c Context, f *Form) error {
		for _, fn := range hooks {
			if err := fn(c, f); err != nil {
				return err
			}
		}
		return nil
	}
}
