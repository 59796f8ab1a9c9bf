package cache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var ErrNilLoader = errors.New("cache loader is required")

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a process-local TTL map. Concurrent misses for one key share a single load.
// A zero or negative ttl keeps entries until they are invalidated.
// A load that overlaps an invalidation of its key returns its value but does not cache it.
type Store[V any] struct {
	mu          sync.RWMutex
	entries     map[string]entry[V]
	generations map[string]uint64
	ttl         time.Duration
	group       singleflight.Group
	now         func() time.Time
}

func NewStore[V any](ttl time.Duration) *Store[V] {
	return &Store[V]{
		entries:     make(map[string]entry[V]),
		generations: make(map[string]uint64),
		ttl:         ttl,
		now:         time.Now,
	}
}

func (s *Store[V]) Get(key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.expired(e) {
		s.evictExpired(key)
		return zero, false
	}
	return e.value, true
}

func (s *Store[V]) Set(key string, value V) {
	if key == "" {
		return
	}
	e := s.newEntry(value)
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

func (s *Store[V]) Invalidate(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.generations[key]++
	s.mu.Unlock()
}

func (s *Store[V]) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	for key := range s.generations {
		if strings.HasPrefix(key, prefix) {
			s.generations[key]++
		}
	}
	s.mu.Unlock()
}

func (s *Store[V]) newEntry(value V) entry[V] {
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}

func (s *Store[V]) expired(e entry[V]) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(s.now())
}

// evictExpired drops key only if it is still expired. Expiry is not an invalidation,
// so the key's generation is left alone.
func (s *Store[V]) evictExpired(key string) {
	s.mu.Lock()
	if e, ok := s.entries[key]; ok && s.expired(e) {
		delete(s.entries, key)
	}
	s.mu.Unlock()
}

// generation registers key so prefix invalidations reach in-flight loads.
func (s *Store[V]) generation(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.generations[key]
	if !ok {
		s.generations[key] = 0
	}
	return gen
}

func (s *Store[V]) setIfGeneration(key string, value V, gen uint64) bool {
	e := s.newEntry(value)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[key] != gen {
		return false
	}
	s.entries[key] = e
	return true
}

// GetOrLoad returns the cached value or runs loader once for all concurrent callers.
// Errors are not cached.
func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, ErrNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(key); ok {
		return value, nil
	}

	out, err, _ := s.group.Do(key, func() (any, error) {
		gen := s.generation(key)
		if value, ok := s.Get(key); ok {
			return value, nil
		}
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.setIfGeneration(key, value, gen)
		return value, nil
	})
	if err != nil {
		return zero, err
	}
	return out.(V), nil
}
