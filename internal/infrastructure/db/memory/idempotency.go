package memory

import (
	"context"
	"sync"
	"time"
)

type idemEntry struct {
	id      string
	expires time.Time
}

// IdempotencyStore is the in-process fallback used when Redis is not
// configured. Expired keys are dropped lazily on lookup.
type IdempotencyStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]idemEntry
}

func NewIdempotencyStore(ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &IdempotencyStore{ttl: ttl, now: time.Now, entries: make(map[string]idemEntry)}
}

func (s *IdempotencyStore) Lookup(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(e.expires) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.id, true, nil
}

// Remember keeps the first live mapping for key.
func (s *IdempotencyStore) Remember(_ context.Context, key, resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok && now.Before(e.expires) {
		return nil
	}
	s.entries[key] = idemEntry{id: resourceID, expires: now.Add(s.ttl)}
	return nil
}
