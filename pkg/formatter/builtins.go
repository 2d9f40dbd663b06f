package formatter

import (
	"encoding/base64"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/formwizard/pkg/sanitizer"
)

var (
	reWhitespace    = regexp.MustCompile(`\s+`)
	reDashes        = regexp.MustCompile(`[–—]+`)
	reRoundBrackets = regexp.MustCompile(`[()]`)
	reSlashes       = regexp.MustCompile(`[/\\]`)
	reUKPhonePrefix = regexp.MustCompile(`^\+44\(?0?\)?`)
)

var builtins = map[string]Func{
	"trim":                stringFunc(strings.TrimSpace),
	"boolean":             toBoolean,
	"uppercase":           stringFunc(toUpper),
	"lowercase":           stringFunc(toLower),
	"removespaces":        stringFunc(func(s string) string { return reWhitespace.ReplaceAllString(s, "") }),
	"singlespaces":        stringFunc(func(s string) string { return reWhitespace.ReplaceAllString(s, " ") }),
	"hyphens":             stringFunc(func(s string) string { return reDashes.ReplaceAllString(s, "-") }),
	"removeroundbrackets": stringFunc(func(s string) string { return reRoundBrackets.ReplaceAllString(s, "") }),
	"removehyphens":       stringFunc(func(s string) string { return strings.ReplaceAll(s, "-", "") }),
	"removeslashes":       stringFunc(func(s string) string { return reSlashes.ReplaceAllString(s, "") }),
	"ukphoneprefix":       stringFunc(func(s string) string { return reUKPhonePrefix.ReplaceAllString(s, "0") }),
	"base64decode":        stringFunc(decodeBase64),
	"striphtml":           stringFunc(sanitizer.StripHTML),
	"sanitize":            stringFunc(sanitizer.SanitizeHTML),
}

// stringFunc lifts a string transform; other value types pass through.
func stringFunc(fn func(string) string) Func {
	return func(value any) any {
		if s, ok := value.(string); ok {
			return fn(s)
		}
		return value
	}
}

// A Caser keeps state between calls, so each call gets its own.
func toUpper(s string) string { return cases.Upper(language.Und).String(s) }
func toLower(s string) string { return cases.Lower(language.Und).String(s) }

// toBoolean maps true/"true" and false/"false" to booleans and anything else to nil.
func toBoolean(value any) any {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch v {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return nil
}

// decodeBase64 accepts padded and unpadded input in both alphabets.
// Input that is not base64 is returned as is.
func decodeBase64(s string) string {
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil {
			return string(b)
		}
	}
	return s
}
