package session

import (
	"context"
	"time"
)

// Store persists sessions.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get loads a session by token.
	// It returns ErrNotFound for unknown tokens and ErrExpired for expired sessions.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by token. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error

	// Touch records activity without rewriting the session data.
	Touch(ctx context.Context, token string, at time.Time) error
}

// Cleaner is implemented by stores that need expired sessions removed
// periodically. Stores with native expiry do not implement it.
type Cleaner interface {
	// DeleteExpired removes sessions that expired before the given time and
	// returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
