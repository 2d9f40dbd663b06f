package validator

import "errors"

// Configuration errors. They are returned before any value is checked.
var (
	ErrUndefinedValidator = errors.New("validator: undefined validator")
	ErrAnonymousValidator = errors.New("validator: custom validator needs to be a named function")
	ErrEmptyName          = errors.New("validator: name cannot be empty")
	ErrNilFunc            = errors.New("validator: func cannot be nil")
)
