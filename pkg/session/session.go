package session

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Session holds the wizard data of one visitor.
type Session struct {
	ID           string    `json:"id"`
	Token        string    `json:"token"`
	CreatedAt    time.Time `json:"created_at"`
	LastActiveAt time.Time `json:"last_active_at"`
	ExpiresAt    time.Time `json:"expires_at"`

	// Data maps a scope (usually a wizard name) to its values.
	Data map[string]map[string]any `json:"data"`

	dirty bool
	isNew bool
}

// New creates a session with a random UUID and token.
func New(ttl time.Duration) (*Session, error) {
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Session{
		ID:           uuid.NewString(),
		Token:        token,
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    now.Add(ttl),
		Data:         make(map[string]map[string]any),
		dirty:        true,
		isNew:        true,
	}, nil
}

// NewToken returns a random URL-safe token.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Get returns a value of scope.
func (s *Session) Get(scope, key string) (any, bool) {
	v, ok := s.Data[scope][key]
	return v, ok
}

// Set stores a value in scope.
func (s *Session) Set(scope, key string, value any) {
	s.scope(scope)[key] = value
	s.dirty = true
}

// SetAll stores every entry of values in scope.
func (s *Session) SetAll(scope string, values map[string]any) {
	if len(values) == 0 {
		return
	}
	maps.Copy(s.scope(scope), values)
	s.dirty = true
}

// Unset removes keys from scope. The session only becomes dirty when
// something was removed.
func (s *Session) Unset(scope string, keys ...string) {
	data := s.Data[scope]
	for _, k := range keys {
		if _, ok := data[k]; ok {
			delete(data, k)
			s.dirty = true
		}
	}
}

// Values returns a copy of the values of scope.
func (s *Session) Values(scope string) map[string]any {
	return maps.Clone(s.Data[scope])
}

// Reset removes a whole scope.
func (s *Session) Reset(scope string) {
	if _, ok := s.Data[scope]; ok {
		delete(s.Data, scope)
		s.dirty = true
	}
}

func (s *Session) scope(name string) map[string]any {
	if s.Data == nil {
		s.Data = make(map[string]map[string]any)
	}
	data, ok := s.Data[name]
	if !ok {
		data = make(map[string]any)
		s.Data[name] = data
	}
	return data
}

// IsDirty reports whether the session changed since it was loaded.
func (s *Session) IsDirty() bool { return s.dirty }

// MarkDirty forces the next save.
func (s *Session) MarkDirty() { s.dirty = true }

// ClearDirty is called once the session is persisted.
func (s *Session) ClearDirty() { s.dirty = false }

// IsNew reports whether the session has never been stored.
func (s *Session) IsNew() bool { return s.isNew }

// ClearNew is called after the first Create.
func (s *Session) ClearNew() { s.isNew = false }

// IsExpired reports whether the session expired at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Value returns a typed value of scope.
func Value[T any](s *Session, scope, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	v, ok := s.Get(scope, key)
	if !ok {
		return zero, ErrNotFound
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s.%s", ErrTypeMismatch, scope, key)
	}
	return typed, nil
}

// ValueOr returns a typed value of scope or def.
func ValueOr[T any](s *Session, scope, key string, def T) T {
	v, err := Value[T](s, scope, key)
	if err != nil {
		return def
	}
	return v
}

func marshal(s *Session) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshal(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	if s.Data == nil {
		s.Data = make(map[string]map[string]any)
	}
	return &s, nil
}
