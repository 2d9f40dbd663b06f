package validator

import (
	"errors"
	"slices"
	"strings"
)

const (
	// DefaultType is the type of a validation error created without one.
	DefaultType = "default"

	defaultMessage = "Error"
	defaultTitle   = "Oops, something went wrong"
)

// ValidationError is a single field failure.
type ValidationError struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Arguments []any  `json:"arguments,omitempty"`
	Group     string `json:"group,omitempty"`
	Redirect  string `json:"redirect,omitempty"`

	// Message and Title override the translated texts when set.
	Message string `json:"message,omitempty"`
	Title   string `json:"title,omitempty"`

	// Deprecation is an optional notice shown next to the error, for example
	// when the submitted value is accepted for now but will not be later.
	Deprecation string `json:"deprecation,omitempty"`
}

// ErrorOption configures a ValidationError.
type ErrorOption func(*ValidationError)

// WithType sets the validator type.
func WithType(t string) ErrorOption {
	return func(e *ValidationError) {
		if t != "" {
			e.Type = t
		}
	}
}

// WithArguments sets the validator arguments.
func WithArguments(args ...any) ErrorOption {
	return func(e *ValidationError) { e.Arguments = args }
}

// WithGroup reports the error under a group key.
func WithGroup(group string) ErrorOption {
	return func(e *ValidationError) { e.Group = group }
}

// WithRedirect sets the step the user is sent to.
func WithRedirect(path string) ErrorOption {
	return func(e *ValidationError) { e.Redirect = path }
}

// WithMessage sets a fixed message.
func WithMessage(msg string) ErrorOption {
	return func(e *ValidationError) { e.Message = msg }
}

// WithTitle sets a fixed title.
func WithTitle(title string) ErrorOption {
	return func(e *ValidationError) { e.Title = title }
}

// WithDeprecation attaches a deprecation notice.
func WithDeprecation(notice string) ErrorOption {
	return func(e *ValidationError) { e.Deprecation = notice }
}

// NewValidationError creates a failure for key. The type defaults to "default".
func NewValidationError(key string, opts ...ErrorOption) *ValidationError {
	e := &ValidationError{Key: key, Type: DefaultType}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Error implements error.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Key + ": " + e.Message
	}
	return e.Key + ": " + e.Type
}

// GetMessage returns the message or the generic fallback.
func (e *ValidationError) GetMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return defaultMessage
}

// GetTitle returns the title or the generic fallback.
func (e *ValidationError) GetTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return defaultTitle
}

// Deprecated returns the deprecation notice, if any.
func (e *ValidationError) Deprecated() (string, bool) {
	return e.Deprecation, e.Deprecation != ""
}

// Errors maps an error key (field key or group) to its failure.
// Entries produced by an Engine are always *ValidationError.
type Errors map[string]error

// Error implements error.
func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, k := range e.Keys() {
		if e[k] != nil {
			parts = append(parts, e[k].Error())
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Keys returns the error keys, sorted.
func (e Errors) Keys() []string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// ValidationErrors returns the validation failures in key order.
func (e Errors) ValidationErrors() []*ValidationError {
	out := make([]*ValidationError, 0, len(e))
	for _, k := range e.Keys() {
		if ve, ok := e[k].(*ValidationError); ok {
			out = append(out, ve)
		}
	}
	return out
}

// Map returns the failures keyed like e, dropping other errors.
func (e Errors) Map() map[string]*ValidationError {
	out := make(map[string]*ValidationError, len(e))
	for k, err := range e {
		if ve, ok := err.(*ValidationError); ok {
			out[k] = ve
		}
	}
	return out
}

// FromMap converts decoded failures back into Errors.
func FromMap(m map[string]*ValidationError) Errors {
	if len(m) == 0 {
		return nil
	}
	out := make(Errors, len(m))
	for k, ve := range m {
		if ve != nil {
			out[k] = ve
		}
	}
	return out
}

// IsValidationError reports whether err is a non-empty Errors made only of
// validation failures. Anything else must be handled as a fatal error.
func IsValidationError(err error) bool {
	var errs Errors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return false
	}
	for _, e := range errs {
		var ve *ValidationError
		if e == nil || !errors.As(e, &ve) {
			return false
		}
	}
	return true
}
