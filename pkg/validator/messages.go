package validator

import (
	"fmt"
	"maps"
	"strings"
)

// TranslateFunc resolves a message key with placeholder values.
// It returns the key itself when no translation exists, as i18n.Translator.T does.
type TranslateFunc func(key string, values map[string]any) string

// MessageKeys returns the lookup chain for the message of e, most specific first.
func (e *ValidationError) MessageKeys() []string {
	return []string{
		"validation." + e.Key + "." + e.Type,
		"validation." + e.Key + ".default",
		"validation." + e.Type,
		"validation.default",
	}
}

// Translate fills Message from fn unless it is already set.
//
// Placeholders available to messages are label and legend (the field's
// translated label and legend, lowercased), the entries of locals, and one
// named after the error type holding its first argument. The past type gets
// age instead, holding all arguments joined by spaces.
func (e *ValidationError) Translate(fn TranslateFunc, locals map[string]any) {
	if fn == nil || e.Message != "" {
		return
	}
	ctx := map[string]any{
		"label":  strings.ToLower(fn("fields."+e.Key+".label", nil)),
		"legend": strings.ToLower(fn("fields."+e.Key+".legend", nil)),
	}
	maps.Copy(ctx, locals)
	maps.Copy(ctx, e.argumentValues())

	for _, key := range e.MessageKeys() {
		if msg := fn(key, ctx); msg != key {
			e.Message = msg
			return
		}
	}
}

func (e *ValidationError) argumentValues() map[string]any {
	if e.Type == "past" {
		parts := make([]string, 0, len(e.Arguments))
		for _, a := range e.Arguments {
			parts = append(parts, fmt.Sprint(a))
		}
		return map[string]any{"age": strings.Join(parts, " ")}
	}
	if e.Type == "" || len(e.Arguments) == 0 {
		return nil
	}
	return map[string]any{e.Type: e.Arguments[0]}
}

// Translate fills the message of every validation failure in e.
func (e Errors) Translate(fn TranslateFunc, locals map[string]any) {
	for _, ve := range e.ValidationErrors() {
		ve.Translate(fn, locals)
	}
}
