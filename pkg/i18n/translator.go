package i18n

// Translator binds a Bundle to one language.
type Translator struct {
	bundle   *Bundle
	language string
}

// NewTranslator returns a translator for language, or for the default
// language of b when language is empty. It panics on a nil bundle.
func NewTranslator(b *Bundle, language string) *Translator {
	if b == nil {
		panic(ErrNilBundle)
	}
	if language == "" {
		language = b.DefaultLanguage()
	}
	return &Translator{bundle: b, language: language}
}

// T translates key, returning the key itself when it is missing.
func (t *Translator) T(key string, placeholders ...M) string {
	return t.bundle.T(t.language, key, placeholders...)
}

// TranslateMessage has the shape of validator.TranslateFunc:
//
//	errs.Translate(translator.TranslateMessage, locals)
func (t *Translator) TranslateMessage(key string, values map[string]any) string {
	return t.bundle.T(t.language, key, values)
}

// Lookup returns the first translated key of the chain.
func (t *Translator) Lookup(keys []string, placeholders ...M) (string, bool) {
	return t.bundle.Lookup(t.language, keys, placeholders...)
}

// Language returns the bound language.
func (t *Translator) Language() string {
	return t.language
}
