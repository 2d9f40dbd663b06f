package field

import (
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// Field is the definition of a single form input.
type Field struct {
	// Key identifies the field in submitted data and stored values.
	// It is filled from the mapping key when decoding YAML.
	Key string `yaml:"-"`

	Mixin     string `yaml:"mixin,omitempty"`
	ClassName string `yaml:"className,omitempty"`
	Label     string `yaml:"label,omitempty"`
	Legend    string `yaml:"legend,omitempty"`

	// Formatter lists transform names applied after the step defaults.
	Formatter Names `yaml:"formatter,omitempty"`

	// IgnoreDefaults disables the step's default formatters for this field.
	IgnoreDefaults bool `yaml:"ignore-defaults,omitempty"`

	// Validate lists validation rules in the order they are applied.
	Validate Rules `yaml:"validate,omitempty"`

	// Options restricts the field to a fixed set of values.
	Options []Option `yaml:"options,omitempty"`

	// Dependent skips validation unless another field has a given value.
	Dependent *Condition `yaml:"dependent,omitempty"`

	// UseWhen removes the field from the step unless the condition holds
	// against stored values.
	UseWhen *Condition `yaml:"useWhen,omitempty"`

	// Components names the presets merged into this field.
	Components Names `yaml:"components,omitempty"`

	Attributes map[string]string `yaml:"attributes,omitempty"`

	// Controller maps an HTTP method (get, post) to named field hooks.
	Controller map[string]Names `yaml:"controller,omitempty"`
}

// OptionValues returns the values of the configured options in order.
func (f Field) OptionValues() []any {
	if len(f.Options) == 0 {
		return nil
	}
	values := make([]any, 0, len(f.Options))
	for _, o := range f.Options {
		values = append(values, o.Value)
	}
	return values
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Formatter = slices.Clone(f.Formatter)
	out.Components = slices.Clone(f.Components)
	out.Options = slices.Clone(f.Options)
	out.Attributes = maps.Clone(f.Attributes)
	if f.Validate != nil {
		out.Validate = make(Rules, len(f.Validate))
		for i, r := range f.Validate {
			out.Validate[i] = r.clone()
		}
	}
	if f.Dependent != nil {
		c := *f.Dependent
		out.Dependent = &c
	}
	if f.UseWhen != nil {
		c := *f.UseWhen
		out.UseWhen = &c
	}
	if f.Controller != nil {
		out.Controller = make(map[string]Names, len(f.Controller))
		for method, hooks := range f.Controller {
			out.Controller[method] = slices.Clone(hooks)
		}
	}
	return out
}

// Option is one allowed value of a field.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label,omitempty"`
}

// UnmarshalYAML accepts either a plain scalar or a {value, label} mapping.
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		o.Value = node.Value
		return nil
	}
	type plain Option
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*o = Option(p)
	return nil
}

// Names is a list of names that also decodes from a single YAML scalar.
type Names []string

func (n *Names) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*n = Names{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*n = list
		return nil
	default:
		return fmt.Errorf("%w: line %d: expected name or list of names", ErrInvalidYAML, node.Line)
	}
}

// Fields is an ordered list of field definitions.
type Fields []Field

// Get returns the field with the given key.
func (fs Fields) Get(key string) (Field, bool) {
	if i := fs.Index(key); i >= 0 {
		return fs[i], true
	}
	return Field{}, false
}

// Has reports whether a field with the given key exists.
func (fs Fields) Has(key string) bool {
	return fs.Index(key) >= 0
}

// Index returns the position of the field with the given key, or -1.
func (fs Fields) Index(key string) int {
	return slices.IndexFunc(fs, func(f Field) bool { return f.Key == key })
}

// Keys returns field keys in configuration order.
func (fs Fields) Keys() []string {
	keys := make([]string, 0, len(fs))
	for _, f := range fs {
		keys = append(keys, f.Key)
	}
	return keys
}

// Without returns a copy of the list with the given keys removed.
func (fs Fields) Without(keys ...string) Fields {
	out := make(Fields, 0, len(fs))
	for _, f := range fs {
		if !slices.Contains(keys, f.Key) {
			out = append(out, f)
		}
	}
	return out
}

// Clone returns a deep copy of the list.
func (fs Fields) Clone() Fields {
	if fs == nil {
		return nil
	}
	out := make(Fields, len(fs))
	for i, f := range fs {
		out[i] = f.Clone()
	}
	return out
}

// UnmarshalYAML decodes a mapping of key to field definition, keeping document order.
func (fs *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: fields must be a mapping", ErrInvalidYAML, node.Line)
	}
	out := make(Fields, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var f Field
		// A bare key ("name:") declares a field with no configuration.
		if valueNode.Kind != yaml.ScalarNode || valueNode.Tag != "!!null" {
			if err := valueNode.Decode(&f); err != nil {
				return fmt.Errorf("%w: field %q: %w", ErrInvalidYAML, keyNode.Value, err)
			}
		}
		f.Key = keyNode.Value
		out = append(out, f)
	}
	*fs = out
	return nil
}
