package cache

import (
	"context"

	"redress/internal/portal/models"
	"redress/pkg/platform/clock"
)

// DetailStore is the keyed complaint-detail cache. Two implementations
// exist: the in-memory default, and a Redis-backed variant for deployments
// running more than one instance. Both honor the same contract as the
// single-slot stores: operations never surface errors to read paths, and
// invalidation keeps the value for stale-while-revalidate display.
type DetailStore interface {
	Get(ctx context.Context, id string) (models.Complaint, bool)
	Set(ctx context.Context, id string, c models.Complaint)
	IsStale(ctx context.Context, id string) bool
	Invalidate(ctx context.Context, id string)
	InvalidateAll(ctx context.Context)
}

// MemoryDetailStore is the in-memory DetailStore.
type MemoryDetailStore struct {
	slots *KeyedStore[models.Complaint]
}

// NewMemoryDetailStore creates an empty in-memory detail store.
func NewMemoryDetailStore(ttl TTLs, clk clock.Clock) *MemoryDetailStore {
	return &MemoryDetailStore{
		slots: NewKeyedStore[models.Complaint](DomainDetail, ttl.Detail, clk),
	}
}

func (s *MemoryDetailStore) Get(_ context.Context, id string) (models.Complaint, bool) {
	return s.slots.Get(id)
}

func (s *MemoryDetailStore) Set(_ context.Context, id string, c models.Complaint) {
	s.slots.Set(id, c)
}

func (s *MemoryDetailStore) IsStale(_ context.Context, id string) bool {
	return s.slots.IsStale(id)
}

func (s *MemoryDetailStore) Invalidate(_ context.Context, id string) {
	s.slots.Invalidate(id)
}

func (s *MemoryDetailStore) InvalidateAll(_ context.Context) {
	s.slots.InvalidateAll()
}
