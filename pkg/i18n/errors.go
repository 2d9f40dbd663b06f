package i18n

import "errors"

var (
	ErrEmptyLanguage = errors.New("i18n: language cannot be empty")
	ErrInvalidFile   = errors.New("i18n: invalid translation file")
	ErrNilBundle     = errors.New("i18n: bundle is not provided")
)
