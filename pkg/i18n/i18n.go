package i18n

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultLang is used when no default language is configured.
const DefaultLang = "en"

// M holds placeholder values.
type M = map[string]any

// Bundle provides translations per language.
// It is immutable after New.
type Bundle struct {
	// lang -> flattened key -> text
	messages map[string]map[string]string

	// Called when a key is missing in the requested and the default language.
	missingKeyHandler func(lang, key string)

	defaultLang string
	languages   []string
}

// Option configures a Bundle during construction.
type Option func(*Bundle) error

// New creates a bundle with the given options.
func New(opts ...Option) (*Bundle, error) {
	b := &Bundle{
		messages:    make(map[string]map[string]string),
		defaultLang: DefaultLang,
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if b.defaultLang == "" {
		return nil, ErrEmptyLanguage
	}
	if len(b.languages) == 0 {
		b.languages = b.loadedLanguages()
	}

	return b, nil
}

// WithDefaultLanguage sets the fallback language.
func WithDefaultLanguage(lang string) Option {
	return func(b *Bundle) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		b.defaultLang = lang
		return nil
	}
}

// WithLanguages restricts the supported languages. The default language is
// always first, the others follow sorted.
func WithLanguages(langs ...string) Option {
	return func(b *Bundle) error {
		others := make([]string, 0, len(langs))
		for _, l := range langs {
			if l != "" && l != b.defaultLang && !slices.Contains(others, l) {
				others = append(others, l)
			}
		}
		slices.Sort(others)
		b.languages = append([]string{b.defaultLang}, others...)
		return nil
	}
}

// WithMessages adds translations for a language. Nested maps are flattened
// into dotted keys. Later options override earlier ones key by key.
func WithMessages(lang string, messages map[string]any) Option {
	return func(b *Bundle) error {
		if lang == "" {
			return ErrEmptyLanguage
		}
		b.add(lang, flatten(messages, ""))
		return nil
	}
}

// WithMissingKeyHandler sets a func called for every key that has no
// translation, for example to log gaps during development.
func WithMissingKeyHandler(fn func(lang, key string)) Option {
	return func(b *Bundle) error {
		b.missingKeyHandler = fn
		return nil
	}
}

// T returns the translation of key with placeholders replaced.
// It tries lang, then its base language, then the default language, and
// returns the key itself when nothing matches.
func (b *Bundle) T(lang, key string, placeholders ...M) string {
	if text, ok := b.find(lang, key); ok {
		return ReplacePlaceholders(text, merge(placeholders))
	}
	if b.missingKeyHandler != nil {
		b.missingKeyHandler(lang, key)
	}
	return key
}

// Lookup returns the translation of the first key of the chain that exists.
func (b *Bundle) Lookup(lang string, keys []string, placeholders ...M) (string, bool) {
	for _, key := range keys {
		if text, ok := b.find(lang, key); ok {
			return ReplacePlaceholders(text, merge(placeholders)), true
		}
	}
	return "", false
}

// Has reports whether key is translated for lang or a fallback of it.
func (b *Bundle) Has(lang, key string) bool {
	_, ok := b.find(lang, key)
	return ok
}

// Languages returns the supported languages, default first.
func (b *Bundle) Languages() []string {
	return slices.Clone(b.languages)
}

// DefaultLanguage returns the fallback language.
func (b *Bundle) DefaultLanguage() string {
	return b.defaultLang
}

func (b *Bundle) find(lang, key string) (string, bool) {
	for _, l := range b.chain(lang) {
		if text, ok := b.messages[l][key]; ok {
			return text, true
		}
	}
	return "", false
}

func (b *Bundle) chain(lang string) []string {
	chain := make([]string, 0, 3)
	if lang != "" {
		chain = append(chain, lang)
		if base := baseLanguage(lang); base != lang {
			chain = append(chain, base)
		}
	}
	if !slices.Contains(chain, b.defaultLang) {
		chain = append(chain, b.defaultLang)
	}
	return chain
}

func (b *Bundle) add(lang string, flat map[string]string) {
	if b.messages[lang] == nil {
		b.messages[lang] = make(map[string]string, len(flat))
	}
	maps.Copy(b.messages[lang], flat)
}

func (b *Bundle) loadedLanguages() []string {
	others := make([]string, 0, len(b.messages))
	for l := range b.messages {
		if l != b.defaultLang {
			others = append(others, l)
		}
	}
	slices.Sort(others)
	return append([]string{b.defaultLang}, others...)
}

func flatten(data map[string]any, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range data {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]any:
			maps.Copy(out, flatten(v, full))
		case map[string]string:
			for k, s := range v {
				out[full+"."+k] = s
			}
		case nil:
		default:
			out[full] = fmt.Sprint(v)
		}
	}
	return out
}

func merge(placeholders []M) M {
	switch len(placeholders) {
	case 0:
		return nil
	case 1:
		return placeholders[0]
	}
	out := make(M)
	for _, p := range placeholders {
		maps.Copy(out, p)
	}
	return out
}
