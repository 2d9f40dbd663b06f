package internal

import (
	"maps"
	"strings"

	"github.com/dmitrymomot/formwizard/pkg/field"
	"github.com/dmitrymomot/formwizard/pkg/validator"
)

// FieldLocal describes a field to the template.
type FieldLocal struct {
	Key     string           `json:"key"`
	Mixin   string           `json:"mixin,omitempty"`
	UseWhen *field.Condition `json:"useWhen,omitempty"`
}

func (ctl *Controller) localsStage(c Context, f *Form) error {
	locals, err := ctl.locals(c, f)
	if err != nil {
		return err
	}
	f.SetLocals(locals)
	return nil
}

// locals builds the template locals. Step locals are merged last and win.
func (ctl *Controller) locals(c Context, f *Form) (map[string]any, error) {
	if tr := c.Translator(); tr != nil && len(f.Errors) > 0 {
		f.Errors.Translate(tr.TranslateMessage, f.Step.Locals)
	}

	fields := make([]FieldLocal, 0, len(f.Step.Fields))
	for _, fd := range f.Step.Fields {
		fields = append(fields, FieldLocal{Key: fd.Key, Mixin: fd.Mixin, UseWhen: fd.UseWhen})
	}

	next, err := ctl.NextStep(c, f)
	if err != nil {
		return nil, err
	}

	route := strings.TrimPrefix(f.Step.Route, "/")
	values := f.Values
	if values == nil {
		values = map[string]any{}
	}

	locals := map[string]any{
		"errors":      f.Errors.Map(),
		"errorlist":   f.Errors.ValidationErrors(),
		"values":      values,
		"options":     f.Step,
		"action":      c.Request().URL.Path,
		"fields":      fields,
		"route":       route,
		"baseUrl":     f.BaseURL,
		"title":       title(c, f, route),
		"intro":       intro(c, f, route),
		"backLink":    BackLink(f.Step.BackLink, f.BaseURL, f.Edit),
		"nextPage":    next,
		"errorLength": errorLength(f.Errors),
	}
	maps.Copy(locals, f.Step.Locals)
	return locals, nil
}

// title is the page header, or the label or legend of the first field.
func title(c Context, f *Form, route string) string {
	if f.Step.Title != "" {
		return f.Step.Title
	}
	tr := c.Translator()
	if tr == nil {
		return ""
	}
	keys := []string{"pages." + route + ".header"}
	if len(f.Step.Fields) > 0 {
		first := f.Step.Fields[0].Key
		keys = append(keys, "fields."+first+".label", "fields."+first+".legend")
	}
	s, _ := tr.Lookup(keys, f.Step.Locals)
	return s
}

func intro(c Context, f *Form, route string) string {
	if f.Step.Intro != "" {
		return f.Step.Intro
	}
	tr := c.Translator()
	if tr == nil {
		return ""
	}
	s, _ := tr.Lookup([]string{"pages." + route + ".intro"}, f.Step.Locals)
	return s
}

// errorLength is {"single": true} for one error, {"multiple": true} for
// more and nil for none.
func errorLength(errs validator.Errors) map[string]bool {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return map[string]bool{"single": true}
	default:
		return map[string]bool{"multiple": true}
	}
}
