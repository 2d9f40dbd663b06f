package middlewares

import (
	"slices"

	"github.com/dmitrymomot/formwizard/internal"
	"github.com/dmitrymomot/formwizard/pkg/i18n"
)

// LangCookie is the cookie the I18n middleware reads and, when the language
// is chosen with the lang query parameter, writes.
const LangCookie = "lang"

const langCookieMaxAge = 365 * 24 * 60 * 60

// I18nConfig configures the I18n middleware.
type I18nConfig struct {
	Extractor    internal.Extractor
	extractorSet bool
	Persist      bool
}

// I18nOption configures I18nConfig.
type I18nOption func(*I18nConfig)

// WithI18nExtractor replaces the language extractor chain.
func WithI18nExtractor(ext internal.Extractor) I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// WithI18nPersist remembers a language chosen with ?lang= in LangCookie.
func WithI18nPersist() I18nOption {
	return func(cfg *I18nConfig) {
		cfg.Persist = true
	}
}

// FromAcceptLanguage negotiates the Accept-Language header against the
// available languages.
func FromAcceptLanguage(available []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		return i18n.Negotiate(header, available), true
	}
}

// I18n resolves the visitor's language and stores it, together with a
// translator bound to it, in the request context. Step titles, intros and
// validation messages are translated with it.
//
// The default chain is the lang query parameter, LangCookie, then
// Accept-Language. Unsupported languages fall back to the bundle default.
func I18n(b *i18n.Bundle, opts ...I18nOption) internal.Middleware {
	cfg := &I18nConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	supported := b.Languages()
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			internal.FromQuery("lang"),
			internal.FromCookie(LangCookie),
			FromAcceptLanguage(supported),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lang, ok := cfg.Extractor.Extract(c)
			if !ok || !slices.Contains(supported, lang) {
				lang = b.DefaultLanguage()
			}

			if cfg.Persist && c.Query("lang") == lang {
				c.SetCookie(LangCookie, lang, langCookieMaxAge)
			}

			c.Set(internal.TranslatorKey{}, i18n.NewTranslator(b, lang))
			c.Set(internal.LanguageKey{}, lang)

			return next(c)
		}
	}
}

// GetTranslator returns the translator set by I18n, or nil.
func GetTranslator(c internal.Context) *i18n.Translator {
	return internal.ContextValue[*i18n.Translator](c, internal.TranslatorKey{})
}

// GetLanguage returns the language resolved by I18n, or "".
func GetLanguage(c internal.Context) string {
	return internal.ContextValue[string](c, internal.LanguageKey{})
}
