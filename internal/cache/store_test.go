package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"redress/internal/portal/models"
	"redress/pkg/platform/clock"
)

// =============================================================================
// Store Test Suite
// =============================================================================
// Staleness is driven entirely by the injected clock, so TTL expiry is
// exercised without sleeps.

type StoreSuite struct {
	suite.Suite
	clock *clock.Fake
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.clock = clock.NewFake(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
}

const testTTL = 5 * time.Minute

func (s *StoreSuite) TestStaleBeforeFirstSet() {
	store := NewStore[int](DomainStats, testTTL, s.clock)

	s.True(store.IsStale(), "a never-populated slot is stale regardless of TTL")

	_, populated := store.Get()
	s.False(populated)
}

func (s *StoreSuite) TestFreshAfterSetUntilTTL() {
	store := NewStore[int](DomainStats, testTTL, s.clock)
	store.Set(42)

	s.False(store.IsStale())

	s.clock.Advance(testTTL - time.Second)
	s.False(store.IsStale(), "still inside the TTL window")

	s.clock.Advance(time.Second)
	s.True(store.IsStale(), "stale once exactly TTL has elapsed")

	v, populated := store.Get()
	s.True(populated)
	s.Equal(42, v, "expiry never discards the value")
}

func (s *StoreSuite) TestSetReplacesWholeEntry() {
	store := NewStore[[]string](DomainComplaints, testTTL, s.clock)
	store.Set([]string{"a"})

	s.clock.Advance(testTTL)
	store.Set([]string{"b", "c"})

	s.False(store.IsStale(), "a write restamps freshness")
	v, _ := store.Get()
	s.Equal([]string{"b", "c"}, v)
}

func (s *StoreSuite) TestInvalidateKeepsValueForStaleServe() {
	store := NewStore[int](DomainStats, testTTL, s.clock)
	store.Set(7)

	store.Invalidate()

	s.True(store.IsStale(), "invalidation forces the next read path to refetch")
	v, populated := store.Get()
	s.True(populated, "the stale value stays readable while a refetch is in flight")
	s.Equal(7, v)
}

// =============================================================================
// Keyed Store
// =============================================================================

func (s *StoreSuite) TestKeyedStoreIndependentFreshness() {
	store := NewKeyedStore[string](DomainDetail, testTTL, s.clock)

	s.True(store.IsStale("c1"), "an absent key is stale by definition")

	store.Set("c1", "first")
	s.clock.Advance(2 * time.Minute)
	store.Set("c2", "second")

	s.clock.Advance(testTTL - 2*time.Minute)
	s.True(store.IsStale("c1"))
	s.False(store.IsStale("c2"), "each key has its own freshness clock")
}

func (s *StoreSuite) TestKeyedInvalidateTouchesOneKey() {
	store := NewKeyedStore[string](DomainDetail, testTTL, s.clock)
	store.Set("c1", "first")
	store.Set("c2", "second")

	store.Invalidate("c1")

	s.True(store.IsStale("c1"))
	s.False(store.IsStale("c2"), "invalidating one entity does not affect others")

	v, populated := store.Get("c1")
	s.True(populated)
	s.Equal("first", v)
}

func (s *StoreSuite) TestKeyedInvalidateAll() {
	store := NewKeyedStore[string](DomainDetail, testTTL, s.clock)
	store.Set("c1", "first")
	store.Set("c2", "second")

	store.InvalidateAll()

	s.True(store.IsStale("c1"))
	s.True(store.IsStale("c2"))
}

// =============================================================================
// Service Construction
// =============================================================================

func (s *StoreSuite) TestServiceIsolation() {
	a := NewService(DefaultTTLs(), s.clock)
	b := NewService(DefaultTTLs(), s.clock)

	a.Stats.Set(models.Stats{Open: 1})

	s.False(a.Stats.IsStale())
	s.True(b.Stats.IsStale(), "services share no global state")
}
