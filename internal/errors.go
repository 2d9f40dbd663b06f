package internal

import (
	"errors"
	"net/http"
)

// Configuration and runtime errors of the wizard layer.
var (
	ErrTemplateRequired     = errors.New("wizard: a template must be provided")
	ErrRendererRequired     = errors.New("wizard: a renderer must be configured")
	ErrSessionNotConfigured = errors.New("wizard: session manager is not configured")
	ErrJobsNotConfigured    = errors.New("wizard: job queue is not configured")
	ErrUnknownFieldHook     = errors.New("wizard: unknown field hook")
	ErrInvalidStep          = errors.New("wizard: invalid step")
	ErrDuplicateStep        = errors.New("wizard: duplicate step route")
	ErrLoadWizard           = errors.New("wizard: failed to load wizard definition")
	ErrStartupHook          = errors.New("wizard: startup hook failed")
)

// HTTPError is an error with an HTTP status code.
// Return it from a handler to control the response of the error handler.
type HTTPError struct {
	// Err is the underlying cause, if any.
	Err error

	// Message is shown to the user.
	Message string

	Title string

	Detail string

	// ErrorCode is an application specific code, e.g. "method_not_allowed".
	ErrorCode string

	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code.
func (e *HTTPError) StatusCode() int {
	return e.Code
}

// StatusText returns the standard text of the status code.
func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Title = title
	}
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

// ErrMethodNotAllowed is returned by a step for methods other than GET and POST.
func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// IsHTTPError reports whether err wraps an HTTPError.
func IsHTTPError(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr)
}

// AsHTTPError returns the HTTPError wrapped by err, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
