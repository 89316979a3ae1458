// pkg/memcache/store.go
package mem

import (
	"context"
	"sync"
	"time"

	"tabi/pkg/utils"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// Store is a process-local key-value map with optional per-key expiry.
// It backs STORE_BACKEND=memory, the tests, and short-lived caches.
type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

// Get returns utils.ErrKeyNotFound for missing or expired keys.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, utils.ErrKeyNotFound
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		s.mu.Lock()
		// a Set may have landed since the read lock was dropped
		if cur, ok := s.data[key]; ok && !cur.expiresAt.IsZero() && s.now().After(cur.expiresAt) {
			delete(s.data, key)
		}
		s.mu.Unlock()
		return nil, utils.ErrKeyNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.SetWithTTL(ctx, key, value, 0)
}

// SetWithTTL stores value for ttl; ttl <= 0 keeps it until deleted.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	cp := make([]byte, len(value))
	copy(cp, value)

	e := entry{value: cp}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = e
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store) Close() error { return nil }
