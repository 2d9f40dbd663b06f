package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// maxAcceptLanguageLength caps the header size handed to the parser.
const maxAcceptLanguageLength = 4096

// Negotiate returns the supported language that best matches an
// Accept-Language header. It falls back to the first supported language.
//
//	Negotiate("cy-GB,cy;q=0.9,en;q=0.8", []string{"en", "cy"}) // "cy"
func Negotiate(header string, supported []string) string {
	if len(supported) == 0 {
		return ""
	}
	if header == "" {
		return supported[0]
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	desired, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(desired) == 0 {
		return supported[0]
	}

	tags := make([]language.Tag, len(supported))
	for i, s := range supported {
		tags[i] = language.Make(s)
	}

	_, idx, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No || idx < 0 || idx >= len(supported) {
		return supported[0]
	}
	return supported[idx]
}

// baseLanguage strips the region from a tag: "en-GB" becomes "en".
func baseLanguage(lang string) string {
	if base, _, ok := strings.Cut(lang, "-"); ok && base != "" {
		return base
	}
	return lang
}
