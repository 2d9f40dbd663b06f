package field

import (
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// CustomFunc is an ad hoc validator attached to a single rule.
// It returns true when the value is valid.
type CustomFunc func(value any) bool

// Rule is one validation step of a field.
type Rule struct {
	// Type is the registered validator name, or the name of a custom rule.
	Type string `yaml:"type"`

	// Arguments are passed to the validator after the value.
	Arguments []any `yaml:"arguments,omitempty"`

	// Group reports the failure under a shared key instead of the field key.
	Group string `yaml:"group,omitempty"`

	// Redirect overrides the step the user is sent back to on failure.
	Redirect string `yaml:"redirect,omitempty"`

	// Func makes this a custom rule. Type must then carry its name.
	Func CustomFunc `yaml:"-"`
}

// Custom builds a named custom rule.
func Custom(name string, fn CustomFunc) Rule {
	return Rule{Type: name, Func: fn}
}

// IsCustom reports whether the rule carries its own function.
func (r Rule) IsCustom() bool {
	return r.Func != nil
}

// UnmarshalYAML accepts a validator name or a rule mapping.
// A scalar arguments value is wrapped into a single element list.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Type = node.Value
		return nil
	}
	var raw struct {
		Type      string `yaml:"type"`
		Arguments any    `yaml:"arguments"`
		Group     string `yaml:"group"`
		Redirect  string `yaml:"redirect"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*r = Rule{
		Type:      raw.Type,
		Arguments: toArguments(raw.Arguments),
		Group:     raw.Group,
		Redirect:  raw.Redirect,
	}
	return nil
}

func (r Rule) clone() Rule {
	r.Arguments = slices.Clone(r.Arguments)
	return r
}

// identity is used to de-duplicate rules when components are merged.
func (r Rule) identity() string {
	if r.IsCustom() {
		return "custom:" + r.Type
	}
	var b strings.Builder
	b.WriteString(r.Type)
	for _, a := range r.Arguments {
		fmt.Fprintf(&b, "|%v", a)
	}
	b.WriteString("|g:" + r.Group + "|r:" + r.Redirect)
	return b.String()
}

// Rules is an ordered rule list that also decodes from a single YAML scalar.
type Rules []Rule

func (rs *Rules) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode, yaml.MappingNode:
		var r Rule
		if err := r.UnmarshalYAML(node); err != nil {
			return err
		}
		*rs = Rules{r}
		return nil
	case yaml.SequenceNode:
		out := make(Rules, 0, len(node.Content))
		for _, item := range node.Content {
			var r Rule
			if err := r.UnmarshalYAML(item); err != nil {
				return err
			}
			out = append(out, r)
		}
		*rs = out
		return nil
	default:
		return fmt.Errorf("%w: line %d: invalid validate entry", ErrInvalidYAML, node.Line)
	}
}

// Names returns the rule types in order.
func (rs Rules) Names() []string {
	names := make([]string, 0, len(rs))
	for _, r := range rs {
		names = append(names, r.Type)
	}
	return names
}

func toArguments(v any) []any {
	switch a := v.(type) {
	case nil:
		return nil
	case []any:
		return a
	default:
		return []any{a}
	}
}
