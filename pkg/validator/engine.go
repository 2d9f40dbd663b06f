package validator

import (
	"fmt"
	"slices"

	"github.com/dmitrymomot/formwizard/pkg/field"
)

// Engine validates the values of one field set.
// It is immutable after NewEngine and safe for concurrent use.
type Engine struct {
	registry *Registry
	fields   field.Fields
	rules    map[string]field.Rules
}

// NewEngine prepares the rules of fields. A nil registry means NewRegistry().
//
// Fields with options get a trailing equal rule built from the option values.
// Every rule is resolved now, so an unknown validator name or an unnamed custom
// rule is reported here instead of at request time.
func NewEngine(fields field.Fields, r *Registry) (*Engine, error) {
	if r == nil {
		r = NewRegistry()
	}
	e := &Engine{
		registry: r,
		fields:   fields.Clone(),
		rules:    make(map[string]field.Rules, len(fields)),
	}
	for _, f := range e.fields {
		rules := slices.Clone(f.Validate)
		if len(f.Options) > 0 {
			rules = append(rules, field.Rule{Type: "equal", Arguments: f.OptionValues()})
		}
		for _, rule := range rules {
			switch {
			case rule.IsCustom() && rule.Type == "":
				return nil, fmt.Errorf("%w: field %s", ErrAnonymousValidator, f.Key)
			case rule.IsCustom():
			case !r.Has(rule.Type):
				return nil, fmt.Errorf("field %s: %w", f.Key, undefined(rule.Type))
			}
		}
		e.rules[f.Key] = rules
	}
	return e, nil
}

// Rules returns the prepared rules of a field, options rule included.
func (e *Engine) Rules(key string) field.Rules {
	return slices.Clone(e.rules[key])
}

// ShouldValidate reports whether the dependent condition of key holds.
// A condition on a field that is not part of the set always holds.
func (e *Engine) ShouldValidate(key string, values map[string]any) bool {
	f, ok := e.fields.Get(key)
	if !ok || f.Dependent == nil || f.Dependent.Field == "" {
		return true
	}
	if !e.fields.Has(f.Dependent.Field) {
		return true
	}
	return f.Dependent.Matches(values[f.Dependent.Field])
}

// ValidateField checks one value and returns its first failure.
//
// When the dependent condition of the field does not hold, no rule runs and
// values[key] is replaced by empty. Unknown keys are not validated.
func (e *Engine) ValidateField(key string, value any, values map[string]any, empty any) *ValidationError {
	rules, ok := e.rules[key]
	if !ok {
		return nil
	}
	if !e.ShouldValidate(key, values) {
		if values != nil {
			values[key] = empty
		}
		return nil
	}
	for _, rule := range rules {
		if !e.apply(rule, value, values) {
			return NewValidationError(key,
				WithType(rule.Type),
				WithArguments(rule.Arguments...),
				WithGroup(rule.Group),
				WithRedirect(rule.Redirect),
			)
		}
	}
	return nil
}

// Validate checks every field in configuration order.
// Failures are keyed by rule group, or by field key when there is none; the
// last failing field of a group wins. The result is nil when all values pass.
// The empty func gives the replacement value of a skipped dependent field and
// may be nil, in which case the empty string is used.
func (e *Engine) Validate(values map[string]any, empty func(key string) any) Errors {
	var errs Errors
	for _, f := range e.fields {
		var emptyValue any = ""
		if empty != nil {
			emptyValue = empty(f.Key)
		}
		ve := e.ValidateField(f.Key, values[f.Key], values, emptyValue)
		if ve == nil {
			continue
		}
		if errs == nil {
			errs = make(Errors)
		}
		k := ve.Key
		if ve.Group != "" {
			k = ve.Group
		}
		errs[k] = ve
	}
	return errs
}

func (e *Engine) apply(rule field.Rule, value any, values map[string]any) bool {
	if rule.IsCustom() {
		return rule.Func(value)
	}
	entry, ok := e.registry.lookup(rule.Type)
	if !ok {
		return false
	}
	return entry.call(value, values, rule.Arguments)
}
