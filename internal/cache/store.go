package cache

import (
	"sync"
	"time"

	"redress/pkg/platform/clock"
)

// entry is one cache slot. A zero fetchedAt means the slot has never been
// populated, or was invalidated; either way it is stale regardless of TTL.
type entry[T any] struct {
	value     T
	populated bool
	fetchedAt time.Time
}

func (e entry[T]) stale(now time.Time, ttl time.Duration) bool {
	if e.fetchedAt.IsZero() {
		return true
	}
	return now.Sub(e.fetchedAt) >= ttl
}

// Store is a single-slot cache for one domain. Writes replace the whole
// entry so readers never observe a partially updated value. The original
// portal runs single-threaded; this process serves concurrent HTTP readers,
// so the slot is guarded by an RWMutex.
type Store[T any] struct {
	mu     sync.RWMutex
	domain Domain
	ttl    time.Duration
	clock  clock.Clock
	slot   entry[T]
}

// NewStore creates an empty store for the given domain. A nil clock
// defaults to the wall clock.
func NewStore[T any](domain Domain, ttl time.Duration, clk clock.Clock) *Store[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &Store[T]{domain: domain, ttl: ttl, clock: clk}
}

// Get returns the stored value and whether the slot was ever populated. An
// invalidated slot still returns its last value: stale-while-revalidate.
func (s *Store[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slot.value, s.slot.populated
}

// Set replaces the stored value and stamps the fetch time.
func (s *Store[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = entry[T]{value: v, populated: true, fetchedAt: s.clock.Now()}
	writesTotal.WithLabelValues(string(s.domain)).Inc()
}

// IsStale reports whether the slot must be refreshed: never populated,
// invalidated, or older than the domain TTL.
func (s *Store[T]) IsStale() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stale := s.slot.stale(s.clock.Now(), s.ttl)
	observeStaleCheck(s.domain, s.slot.populated, stale)
	return stale
}

// Invalidate clears the fetch timestamp while keeping the value, forcing
// the next read path to refetch.
func (s *Store[T]) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot.fetchedAt = time.Time{}
	invalidationsTotal.WithLabelValues(string(s.domain)).Inc()
}

// KeyedStore maps entity identifiers to independent cache slots. Each key
// has its own freshness clock; a key that was never set is stale by
// definition.
type KeyedStore[T any] struct {
	mu     sync.RWMutex
	domain Domain
	ttl    time.Duration
	clock  clock.Clock
	slots  map[string]entry[T]
}

// NewKeyedStore creates an empty keyed store.
func NewKeyedStore[T any](domain Domain, ttl time.Duration, clk clock.Clock) *KeyedStore[T] {
	if clk == nil {
		clk = clock.New()
	}
	return &KeyedStore[T]{domain: domain, ttl: ttl, clock: clk, slots: make(map[string]entry[T])}
}

// Get returns the value stored under key and whether it was ever populated.
func (s *KeyedStore[T]) Get(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.slots[key]
	return e.value, e.populated
}

// Set replaces the entry under key and stamps its fetch time.
func (s *KeyedStore[T]) Set(key string, v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = entry[T]{value: v, populated: true, fetchedAt: s.clock.Now()}
	writesTotal.WithLabelValues(string(s.domain)).Inc()
}

// IsStale reports whether the entry under key must be refreshed.
func (s *KeyedStore[T]) IsStale(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.slots[key]
	stale := e.stale(s.clock.Now(), s.ttl)
	observeStaleCheck(s.domain, e.populated, stale)
	return stale
}

// Invalidate clears the fetch timestamp of one key, keeping its value.
// Other keys are untouched.
func (s *KeyedStore[T]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.slots[key]; ok {
		e.fetchedAt = time.Time{}
		s.slots[key] = e
	}
	invalidationsTotal.WithLabelValues(string(s.domain)).Inc()
}

// InvalidateAll clears the fetch timestamp of every key.
func (s *KeyedStore[T]) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.slots {
		e.fetchedAt = time.Time{}
		s.slots[key] = e
	}
	invalidationsTotal.WithLabelValues(string(s.domain)).Inc()
}
