package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/riskibarqy/the-gaffer/internal/platform/resilience"
)

var errNilLoader = errors.New("cache loader is required")

// Store is an in-process TTL cache keyed by string. Concurrent loads of the
// same key share one loader call. A zero TTL never expires entries.
type Store[V any] struct {
	mu      sync.RWMutex
	entries map[string]item[V]
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
}

type item[V any] struct {
	value     V
	expiresAt time.Time
}

func (it item[V]) expired(now time.Time) bool {
	return !it.expiresAt.IsZero() && !it.expiresAt.After(now)
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries: make(map[string]item[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	it, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if it.expired(s.now()) {
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}

	return it.value, true
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	it := item[V]{value: value}
	if s.ttl > 0 {
		it.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = it
	s.mu.Unlock()
}

// Delete drops keys and forgets any in-flight load for them.
func (s *Store[V]) Delete(_ context.Context, keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		if key == "" {
			continue
		}
		delete(s.entries, key)
		s.flight.Forget(key)
	}
}

// PurgeExpired reports how many entries were dropped.
func (s *Store[V]) PurgeExpired(_ context.Context) int {
	now := s.now()
	removed := 0

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, it := range s.entries {
		if it.expired(now) {
			delete(s.entries, key)
			removed++
		}
	}

	return removed
}

// GetOrLoad returns the cached value or runs loader once per key across
// concurrent callers. Loader errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, errNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	value, _ := v.(V)
	return value, nil
}
