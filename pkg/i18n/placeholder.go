package i18n

import (
	"fmt"
	"regexp"
)

var rePlaceholder = regexp.MustCompile(`\{\{\s*([\w.-]+)\s*\}\}`)

// ReplacePlaceholders substitutes {{name}} placeholders with values.
// Surrounding spaces inside the braces are allowed. Placeholders without a
// value are left unchanged.
//
//	ReplacePlaceholders("Enter your {{ label }}", M{"label": "email"})
//	// "Enter your email"
func ReplacePlaceholders(template string, values M) string {
	if len(values) == 0 {
		return template
	}
	return rePlaceholder.ReplaceAllStringFunc(template, func(match string) string {
		name := rePlaceholder.FindStringSubmatch(match)[1]
		v, ok := values[name]
		if !ok {
			return match
		}
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	})
}
