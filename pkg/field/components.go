package field

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"dario.cat/mergo"
)

// Components is a registry of named field presets.
type Components map[string]Field

// Apply returns a copy of fields with every referenced component merged in.
// Fields without components are copied unchanged.
func (c Components) Apply(fields Fields) (Fields, error) {
	out := make(Fields, 0, len(fields))
	for _, f := range fields {
		if len(f.Components) == 0 {
			out = append(out, f.Clone())
			continue
		}
		presets := make([]Field, 0, len(f.Components))
		for _, name := range f.Components {
			preset, ok := c[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q (field %q)", ErrUnknownComponent, name, f.Key)
			}
			presets = append(presets, preset)
		}
		merged, err := Merge(f, presets...)
		if err != nil {
			return nil, err
		}
		out = append(out, merged)
	}
	return out, nil
}

// Merge folds presets into f in order and returns the result. f is not modified.
func Merge(f Field, presets ...Field) (Field, error) {
	out := f.Clone()
	for _, preset := range presets {
		src := preset.Clone()

		// Object attributes follow their own rules below; mergo handles
		// strings (keep existing) and lists (append).
		attrs, ctrl := src.Attributes, src.Controller
		dependent, useWhen := src.Dependent, src.UseWhen
		src.Key = ""
		src.Components = nil
		src.Attributes, src.Controller = nil, nil
		src.Dependent, src.UseWhen = nil, nil

		if err := mergo.Merge(&out, src, mergo.WithAppendSlice); err != nil {
			return Field{}, errors.Join(ErrMergeComponent, err)
		}

		out.Formatter = unionNames(out.Formatter)
		out.Validate = unionRules(out.Validate)
		out.Options = unionOptions(out.Options)
		out.Attributes = extend(out.Attributes, attrs)
		out.Controller = mergeController(ctrl, out.Controller)
		out.Dependent = mergeCondition(out.Dependent, dependent)
		out.UseWhen = mergeCondition(out.UseWhen, useWhen)
	}
	return out, nil
}

func unionNames(names Names) Names {
	if names == nil {
		return nil
	}
	out := make(Names, 0, len(names))
	for _, n := range names {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func unionRules(rules Rules) Rules {
	if rules == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(rules))
	out := make(Rules, 0, len(rules))
	for _, r := range rules {
		id := r.identity()
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, r)
	}
	return out
}

func unionOptions(options []Option) []Option {
	if options == nil {
		return nil
	}
	out := make([]Option, 0, len(options))
	for _, o := range options {
		if !slices.ContainsFunc(out, func(e Option) bool { return e.Value == o.Value }) {
			out = append(out, o)
		}
	}
	return out
}

func extend(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	out := maps.Clone(dst)
	if out == nil {
		out = make(map[string]string, len(src))
	}
	maps.Copy(out, src)
	return out
}

// mergeController unions hooks per method, component hooks first.
func mergeController(add, existing map[string]Names) map[string]Names {
	if len(add) == 0 {
		return existing
	}
	out := make(map[string]Names, len(existing)+len(add))
	maps.Copy(out, existing)
	for method, hooks := range add {
		out[method] = unionNames(append(slices.Clone(hooks), existing[method]...))
	}
	return out
}

func mergeCondition(dst, src *Condition) *Condition {
	if src == nil {
		return dst
	}
	out := *src
	if dst != nil {
		if out.Field == "" {
			out.Field = dst.Field
		}
		if out.Value == nil {
			out.Value = dst.Value
		}
	}
	return &out
}
