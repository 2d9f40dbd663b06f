package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formwizard/pkg/cookie"
	"github.com/dmitrymomot/formwizard/pkg/logger"
	"github.com/dmitrymomot/formwizard/pkg/session"
)

const (
	defaultSessionCookieName    = "__wizard"
	defaultSessionTTL           = 24 * time.Hour
	defaultSessionTouchInterval = 5 * time.Minute
)

// SessionConfig is the env form of the session settings.
type SessionConfig struct {
	// Store selects the backend: memory, redis or postgres.
	Store         string        `env:"SESSION_STORE" envDefault:"memory"`
	CookieName    string        `env:"SESSION_COOKIE_NAME" envDefault:"__wizard"`
	TTL           time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
}

// Options returns the session options matching cfg.
func (cfg SessionConfig) Options() []SessionOption {
	return []SessionOption{
		WithSessionCookieName(cfg.CookieName),
		WithSessionTTL(cfg.TTL),
		WithSessionTouchInterval(cfg.TouchInterval),
	}
}

// SessionManager ties a session.Store to the session cookie.
//
// Sessions slide: every save moves the expiry ttl ahead. Requests that do not
// change the session only touch it, at most once per touch interval.
type SessionManager struct {
	store         session.Store
	cookies       *cookie.Manager
	logger        *slog.Logger
	cookieName    string
	ttl           time.Duration
	touchInterval time.Duration
}

// SessionOption configures a SessionManager.
type SessionOption func(*SessionManager)

// NewSessionManager creates a manager. The cookie manager is replaced by the
// app's one when the manager is installed with WithSession.
func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:         store,
		cookies:       cookie.New(),
		logger:        logger.NewNope(),
		cookieName:    defaultSessionCookieName,
		ttl:           defaultSessionTTL,
		touchInterval: defaultSessionTouchInterval,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

func WithSessionTTL(ttl time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if ttl > 0 {
			sm.ttl = ttl
		}
	}
}

// WithSessionTouchInterval sets how stale LastActiveAt may get before an
// unchanged session is touched. Zero touches on every request.
func WithSessionTouchInterval(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if d >= 0 {
			sm.touchInterval = d
		}
	}
}

func (sm *SessionManager) setLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

func (sm *SessionManager) setCookies(m *cookie.Manager) {
	if m != nil {
		sm.cookies = m
	}
}

// Load returns the session of the request cookie.
// A missing cookie, an unknown token or an expired session yield nil
// without error, so the caller can start a new session.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*session.Session, error) {
	token, err := sm.cookies.Read(r, sm.cookieName)
	if err != nil || token == "" {
		return nil, nil
	}

	s, err := sm.store.Get(ctx, token)
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		sm.logger.DebugContext(ctx, "session cookie without session", slog.Any("reason", err))
		return nil, nil
	case err != nil:
		return nil, err
	}
	return s, nil
}

// Create stores a new session and sets its cookie.
func (sm *SessionManager) Create(ctx context.Context, w http.ResponseWriter) (*session.Session, error) {
	s, err := session.New(sm.ttl)
	if err != nil {
		return nil, err
	}
	if err := sm.store.Create(ctx, s); err != nil {
		return nil, err
	}
	s.ClearNew()
	s.ClearDirty()
	sm.writeCookie(w, s)
	return s, nil
}

// Save persists a dirty session and extends its expiry, or touches an
// unchanged one when its activity mark is stale.
func (sm *SessionManager) Save(ctx context.Context, w http.ResponseWriter, s *session.Session) error {
	if s == nil {
		return nil
	}
	now := time.Now()
	if !s.IsDirty() {
		if now.Sub(s.LastActiveAt) < sm.touchInterval {
			return nil
		}
		if err := sm.store.Touch(ctx, s.Token, now); err != nil {
			return err
		}
		s.LastActiveAt = now
		return nil
	}

	s.LastActiveAt = now
	s.ExpiresAt = now.Add(sm.ttl)
	if err := sm.store.Update(ctx, s); err != nil {
		return err
	}
	s.ClearDirty()
	sm.writeCookie(w, s)
	return nil
}

// Destroy deletes the session and expires the cookie.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, s *session.Session) error {
	if s != nil {
		if err := sm.store.Delete(ctx, s.Token); err != nil {
			return err
		}
	}
	sm.cookies.Delete(w, sm.cookieName)
	return nil
}

// Store returns the underlying store.
func (sm *SessionManager) Store() session.Store {
	return sm.store
}

func (sm *SessionManager) writeCookie(w http.ResponseWriter, s *session.Session) {
	sm.cookies.Write(w, sm.cookieName, s.Token, int(sm.ttl.Seconds()))
}
