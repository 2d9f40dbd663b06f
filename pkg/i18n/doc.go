// Package i18n resolves the texts of form wizards: field labels and legends,
// step titles and validation messages.
//
// A [Bundle] holds flattened translations per language and is immutable once
// built, so it is safe for concurrent use.
//
//	bundle, err := i18n.New(
//		i18n.WithDefaultLanguage("en"),
//		i18n.WithMessages("en", map[string]any{
//			"fields": map[string]any{
//				"name": map[string]any{"label": "Full name"},
//			},
//			"validation": map[string]any{
//				"required": "Enter your {{label}}",
//			},
//		}),
//	)
//
//	bundle.T("en", "fields.name.label") // "Full name"
//
// # Files
//
// [WithYAMLDir] loads every YAML file of an fs.FS. A file at the root is named
// after its language (en.yaml); files inside a directory belong to the
// directory's language (en/validation.yaml). Files of one language are merged.
//
// # Lookup chains
//
// [Bundle.Lookup] walks a list of keys and returns the first one translated,
// which is how validation messages fall back from the most specific key to
// the generic one:
//
//	msg, ok := bundle.Lookup("en", []string{
//		"validation.email.required",
//		"validation.required",
//		"validation.default",
//	}, i18n.M{"label": "email"})
//
// # Placeholders
//
// Translations use {{name}} placeholders. Unknown placeholders are kept as is.
//
// # Languages
//
// [Negotiate] picks the best supported language for an Accept-Language header
// using golang.org/x/text/language matching. A [Translator] binds a bundle to
// one language and provides a func matching validator.TranslateFunc.
package i18n
