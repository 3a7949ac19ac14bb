//go:build integration

package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"redress/internal/portal/models"
	"redress/pkg/platform/clock"
	"redress/pkg/testutil/containers"
)

// Exercises the Redis detail store against a real server, since miniredis
// does not cover SCAN cursor behavior faithfully for large keyspaces.
func TestRedisDetailStoreIntegration(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	ctx := context.Background()

	clk := clock.NewFake(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	store := NewRedisDetailStore(rc.Client, DefaultTTLs(), clk, slog.Default())

	for _, id := range []string{"c1", "c2", "c3"} {
		store.Set(ctx, id, models.Complaint{ID: id, Requester: "Ada"})
	}

	if store.IsStale(ctx, "c2") {
		t.Fatal("freshly written entry reported stale")
	}

	store.InvalidateAll(ctx)
	for _, id := range []string{"c1", "c2", "c3"} {
		if !store.IsStale(ctx, id) {
			t.Fatalf("entry %s still fresh after InvalidateAll", id)
		}
		if got, ok := store.Get(ctx, id); !ok || got.ID != id {
			t.Fatalf("entry %s lost its value on invalidation", id)
		}
	}

	clk.Advance(DefaultTTLs().Detail)
	store.Set(ctx, "c1", models.Complaint{ID: "c1"})
	if store.IsStale(ctx, "c1") {
		t.Fatal("rewrite did not restamp freshness")
	}
}
