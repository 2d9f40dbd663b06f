package session

import "errors"

var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")

	// ErrInvalidToken is returned for an empty or malformed token.
	ErrInvalidToken = errors.New("session: invalid token")

	// ErrTypeMismatch is returned by Value when the stored type differs.
	ErrTypeMismatch = errors.New("session: type mismatch")

	// ErrClosed is returned by a store that has been closed.
	ErrClosed = errors.New("session: store closed")

	ErrMarshal   = errors.New("session: failed to marshal session")
	ErrUnmarshal = errors.New("session: failed to unmarshal session")
)
