package field

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Condition matches the value of another field.
// It backs both dependent validation and useWhen visibility rules.
type Condition struct {
	Field string `yaml:"field"`
	Value any    `yaml:"value"`
}

// When is the shorthand condition "field is true".
func When(field string) *Condition {
	return &Condition{Field: field, Value: true}
}

// UnmarshalYAML accepts the shorthand scalar form, which means {field: name, value: true}.
func (c *Condition) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*c = Condition{Field: node.Value, Value: true}
		return nil
	}
	type plain Condition
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*c = Condition(p)
	return nil
}

// Matches reports whether actual satisfies the condition.
// A list value matches when any of its elements equals the expected value.
func (c Condition) Matches(actual any) bool {
	switch list := actual.(type) {
	case []string:
		for _, item := range list {
			if Equal(item, c.Value) {
				return true
			}
		}
		return false
	case []any:
		for _, item := range list {
			if Equal(item, c.Value) {
				return true
			}
		}
		return false
	}
	return Equal(actual, c.Value)
}

// Equal compares two submitted values.
// Form input arrives as strings, so a boolean and its string form are equal.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
