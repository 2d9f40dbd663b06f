package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// DefaultRedisPrefix namespaces session keys.
const DefaultRedisPrefix = "wizard:session"

// RedisStore keeps sessions as JSON documents in Redis.
// Keys expire together with the session, so no cleanup job is needed.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	loads  singleflight.Group
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix sets the key prefix. Keys are stored as "{prefix}:{token}".
func WithRedisPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedisStore creates a store on top of a client from pkg/redis.Open.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	r := &RedisStore{client: client, prefix: DefaultRedisPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create stores a new session.
func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	return r.save(ctx, s)
}

// Get loads a session. Concurrent loads of one token share a single round trip.
func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	v, err, _ := r.loads.Do(token, func() (any, error) {
		data, err := r.client.Get(ctx, r.key(token)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return data, err
	})
	if err != nil {
		return nil, err
	}

	s, err := unmarshal(v.([]byte))
	if err != nil {
		return nil, err
	}
	if s.IsExpired(time.Now()) {
		return nil, ErrExpired
	}
	return s, nil
}

// Update saves a session and refreshes its key expiry.
func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	return r.save(ctx, s)
}

// Delete removes a session.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}

// Touch updates LastActiveAt and keeps the current key expiry.
func (r *RedisStore) Touch(ctx context.Context, token string, at time.Time) error {
	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	s.LastActiveAt = at
	data, err := marshal(s)
	if err != nil {
		return err
	}
	return r.client.SetArgs(ctx, r.key(token), data, redis.SetArgs{KeepTTL: true}).Err()
}

func (r *RedisStore) save(ctx context.Context, s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidToken
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}
	data, err := marshal(s)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(s.Token), data, ttl).Err()
}

func (r *RedisStore) key(token string) string {
	return r.prefix + ":" + token
}

var _ Store = (*RedisStore)(nil)
