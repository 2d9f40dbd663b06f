package internal

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/formwizard/pkg/field"
	"github.com/dmitrymomot/formwizard/pkg/formatter"
)

// DefaultConfirmStep is the step edits fast-forward to.
const DefaultConfirmStep = "/confirm"

// Step configures one page of a wizard.
type Step struct {
	// Route is the path of the step below the wizard base URL, e.g. "/name".
	Route string `yaml:"-"`

	Template string       `yaml:"template,omitempty"`
	Fields   field.Fields `yaml:"fields,omitempty"`

	// DefaultFormatters run before the field formatters. Nil means
	// formatter.DefaultNames; an empty list disables them.
	DefaultFormatters field.Names `yaml:"defaultFormatters,omitempty"`

	// Next is the step that follows. Forks override it.
	Next  string `yaml:"next,omitempty"`
	Forks []Fork `yaml:"forks,omitempty"`

	ConfirmStep    string `yaml:"confirmStep,omitempty"`
	ContinueOnEdit bool   `yaml:"continueOnEdit,omitempty"`
	BackLink       string `yaml:"backLink,omitempty"`

	// Title and Intro replace the translated page texts.
	Title string `yaml:"title,omitempty"`
	Intro string `yaml:"intro,omitempty"`

	// Locals are merged into the template locals last.
	Locals map[string]any `yaml:"locals,omitempty"`
}

// Fork overrides the next step when its condition holds.
type Fork struct {
	Target    string           `yaml:"target"`
	Condition *field.Condition `yaml:"condition,omitempty"`

	// Func decides instead of Condition when set.
	Func ForkFunc `yaml:"-"`
}

// ForkFunc is a fork condition computed from the request.
type ForkFunc func(c Context, f *Form) bool

// When is a fork on the value of a field.
func When(fieldKey string, value any, target string) Fork {
	return Fork{Target: target, Condition: &field.Condition{Field: fieldKey, Value: value}}
}

// WhenFunc is a fork decided by fn.
func WhenFunc(fn ForkFunc, target string) Fork {
	return Fork{Target: target, Func: fn}
}

// matches compares against the submitted value and falls back to the
// stored one when nothing was submitted.
func (fk Fork) matches(c Context, f *Form) bool {
	if fk.Func != nil {
		return fk.Func(c, f)
	}
	if fk.Condition == nil || fk.Condition.Field == "" {
		return false
	}
	v := f.Values[fk.Condition.Field]
	if isBlank(v) {
		v = f.Historical[fk.Condition.Field]
	}
	return fk.Condition.Matches(v)
}

// Clone returns a deep copy of the step. Locals are copied one level deep.
func (s Step) Clone() Step {
	out := s
	out.Fields = s.Fields.Clone()
	out.DefaultFormatters = slices.Clone(s.DefaultFormatters)
	out.Locals = maps.Clone(s.Locals)
	if s.Forks != nil {
		out.Forks = make([]Fork, len(s.Forks))
		for i, fk := range s.Forks {
			out.Forks[i] = fk
			if fk.Condition != nil {
				c := *fk.Condition
				out.Forks[i].Condition = &c
			}
		}
	}
	return out
}

func (s Step) withDefaults() Step {
	if s.DefaultFormatters == nil {
		s.DefaultFormatters = slices.Clone(formatter.DefaultNames)
	}
	if s.ConfirmStep == "" {
		s.ConfirmStep = DefaultConfirmStep
	}
	s.Route = normalizeRoute(s.Route)
	return s
}

func normalizeRoute(route string) string {
	if route == "" || strings.HasPrefix(route, "/") {
		return route
	}
	return "/" + route
}

// Steps is an ordered list of steps that decodes from a YAML mapping of
// route to step.
type Steps []Step

func (ss *Steps) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: steps must be a mapping", ErrLoadWizard, node.Line)
	}
	out := make(Steps, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var s Step
		if valueNode.Tag != "!!null" {
			if err := valueNode.Decode(&s); err != nil {
				return fmt.Errorf("%w: step %q: %w", ErrLoadWizard, keyNode.Value, err)
			}
		}
		s.Route = normalizeRoute(keyNode.Value)
		out = append(out, s)
	}
	*ss = out
	return nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	}
	return false
}
