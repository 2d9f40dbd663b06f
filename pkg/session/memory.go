package session

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	token     string
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory.
//
// Entries are serialized, so a loaded session is independent of the stored
// one. With a maximum size the least recently used session is evicted first.
type MemoryStore struct {
	items    map[string]*list.Element
	eviction *list.List
	opts     memoryOptions
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	maxEntries      int
	cleanupInterval time.Duration
}

// WithMaxEntries bounds the number of stored sessions. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) { o.maxEntries = max(n, 0) }
}

// WithCleanupInterval sets how often expired sessions are dropped in the
// background. Zero disables the janitor; DeleteExpired still works.
// Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(o *memoryOptions) { o.cleanupInterval = d }
}

// NewMemoryStore creates an in-memory store. Call Close to stop the janitor.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	o := memoryOptions{cleanupInterval: time.Minute}
	for _, opt := range opts {
		opt(&o)
	}
	m := &MemoryStore{
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		opts:     o,
		done:     make(chan struct{}),
	}
	if o.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

// Create stores a new session.
func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	return m.put(s)
}

// Get loads a session by token.
func (m *MemoryStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrClosed
	}

	elem, ok := m.items[token]
	if !ok {
		return nil, ErrNotFound
	}
	e := elem.Value.(*memoryEntry)
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		m.remove(elem)
		return nil, ErrExpired
	}
	m.eviction.MoveToFront(elem)

	return unmarshal(e.data)
}

// Update saves a session.
func (m *MemoryStore) Update(_ context.Context, s *Session) error {
	return m.put(s)
}

// Delete removes a session.
func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[token]; ok {
		m.remove(elem)
	}
	return nil
}

// Touch updates LastActiveAt of a stored session.
func (m *MemoryStore) Touch(_ context.Context, token string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	elem, ok := m.items[token]
	if !ok {
		return ErrNotFound
	}
	e := elem.Value.(*memoryEntry)
	s, err := unmarshal(e.data)
	if err != nil {
		return err
	}
	s.LastActiveAt = at
	data, err := marshal(s)
	if err != nil {
		return err
	}
	e.data = data
	m.eviction.MoveToFront(elem)
	return nil
}

// DeleteExpired removes sessions that expired before the given time.
func (m *MemoryStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}

	var n int64
	for elem := m.eviction.Back(); elem != nil; {
		prev := elem.Prev()
		e := elem.Value.(*memoryEntry)
		if !e.expiresAt.IsZero() && e.expiresAt.Before(before) {
			m.remove(elem)
			n++
		}
		elem = prev
	}
	return n, nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the janitor. It is idempotent.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	close(m.done)
	return nil
}

func (m *MemoryStore) put(s *Session) error {
	if s == nil || s.Token == "" {
		return ErrInvalidToken
	}
	data, err := marshal(s)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if elem, ok := m.items[s.Token]; ok {
		e := elem.Value.(*memoryEntry)
		e.data = data
		e.expiresAt = s.ExpiresAt
		m.eviction.MoveToFront(elem)
		return nil
	}

	if m.opts.maxEntries > 0 && len(m.items) >= m.opts.maxEntries {
		if oldest := m.eviction.Back(); oldest != nil {
			m.remove(oldest)
		}
	}

	m.items[s.Token] = m.eviction.PushFront(&memoryEntry{
		token:     s.Token,
		data:      data,
		expiresAt: s.ExpiresAt,
	})
	return nil
}

// remove must be called with the mutex held.
func (m *MemoryStore) remove(elem *list.Element) {
	m.eviction.Remove(elem)
	delete(m.items, elem.Value.(*memoryEntry).token)
}

func (m *MemoryStore) janitor() {
	ticker := time.NewTicker(m.opts.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			_, _ = m.DeleteExpired(context.Background(), now)
		}
	}
}

var (
	_ Store   = (*MemoryStore)(nil)
	_ Cleaner = (*MemoryStore)(nil)
)
