package sync

import (
	"context"
	"fmt"
	"log/slog"

	"redress/internal/cache"
)

// Invalidator marks cache entries stale after a successful mutation. It
// never refetches synchronously: the next Refresh pass of whichever screen
// reads an affected domain performs the real network call. Callers must not
// invalidate on a failed mutation, since nothing changed upstream.
type Invalidator struct {
	caches *cache.Service
	logger *slog.Logger
}

// InvalidatorOption configures an Invalidator.
type InvalidatorOption func(*Invalidator)

// WithInvalidatorLogger sets the structured logger.
func WithInvalidatorLogger(logger *slog.Logger) InvalidatorOption {
	return func(i *Invalidator) { i.logger = logger }
}

// NewInvalidator creates the coordinator.
func NewInvalidator(caches *cache.Service, opts ...InvalidatorOption) (*Invalidator, error) {
	if caches == nil {
		return nil, fmt.Errorf("cache service is required")
	}
	inv := &Invalidator{caches: caches, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(inv)
		}
	}
	return inv, nil
}

// ComplaintCreated marks every domain a new complaint can appear in: the
// list and the dashboard counters.
func (i *Invalidator) ComplaintCreated(ctx context.Context) {
	i.caches.Complaints.Invalidate()
	i.caches.Stats.Invalidate()
	i.logger.DebugContext(ctx, "caches invalidated", "mutation", "complaint_created")
}

// ComplaintUpdated marks the list, the detail entry for that complaint, and
// the dashboard counters (status changes move complaints between buckets).
// Other detail entries keep their freshness.
func (i *Invalidator) ComplaintUpdated(ctx context.Context, id string) {
	i.caches.Complaints.Invalidate()
	i.caches.Details.Invalidate(ctx, id)
	i.caches.Stats.Invalidate()
	i.logger.DebugContext(ctx, "caches invalidated", "mutation", "complaint_updated", "complaint_id", id)
}

// UserUpdated marks the managed-user list.
func (i *Invalidator) UserUpdated(ctx context.Context) {
	i.caches.Users.Invalidate()
	i.logger.DebugContext(ctx, "caches invalidated", "mutation", "user_updated")
}
