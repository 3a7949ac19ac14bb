package cache

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"redress/internal/portal/models"
	"redress/pkg/platform/clock"
)

// =============================================================================
// Redis Detail Store Test Suite
// =============================================================================
// miniredis keeps these as fast unit tests; the testcontainers variant in
// detail_redis_integration_test.go covers a real server.

type RedisDetailSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	clock *clock.Fake
	store *RedisDetailStore
}

func TestRedisDetailSuite(t *testing.T) {
	suite.Run(t, new(RedisDetailSuite))
}

func (s *RedisDetailSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	s.clock = clock.NewFake(time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))
	s.store = NewRedisDetailStore(client, DefaultTTLs(), s.clock, slog.Default())
}

func (s *RedisDetailSuite) complaint(id string) models.Complaint {
	return models.Complaint{ID: id, Requester: "Ada", Status: models.StatusOpen}
}

func (s *RedisDetailSuite) TestMissBeforeSet() {
	ctx := context.Background()

	s.True(s.store.IsStale(ctx, "c1"))
	_, ok := s.store.Get(ctx, "c1")
	s.False(ok)
}

func (s *RedisDetailSuite) TestSetGetRoundTrip() {
	ctx := context.Background()
	s.store.Set(ctx, "c1", s.complaint("c1"))

	got, ok := s.store.Get(ctx, "c1")
	s.True(ok)
	s.Equal("c1", got.ID)
	s.False(s.store.IsStale(ctx, "c1"))
}

func (s *RedisDetailSuite) TestStaleAfterTTL() {
	ctx := context.Background()
	s.store.Set(ctx, "c1", s.complaint("c1"))

	s.clock.Advance(DefaultTTLs().Detail)

	s.True(s.store.IsStale(ctx, "c1"))
	_, ok := s.store.Get(ctx, "c1")
	s.True(ok, "expiry keeps the value readable")
}

func (s *RedisDetailSuite) TestInvalidateKeepsValue() {
	ctx := context.Background()
	s.store.Set(ctx, "c1", s.complaint("c1"))
	s.store.Set(ctx, "c2", s.complaint("c2"))

	s.store.Invalidate(ctx, "c1")

	s.True(s.store.IsStale(ctx, "c1"))
	s.False(s.store.IsStale(ctx, "c2"))

	got, ok := s.store.Get(ctx, "c1")
	s.True(ok)
	s.Equal("c1", got.ID)
}

func (s *RedisDetailSuite) TestInvalidateAll() {
	ctx := context.Background()
	s.store.Set(ctx, "c1", s.complaint("c1"))
	s.store.Set(ctx, "c2", s.complaint("c2"))

	s.store.InvalidateAll(ctx)

	s.True(s.store.IsStale(ctx, "c1"))
	s.True(s.store.IsStale(ctx, "c2"))
}

func (s *RedisDetailSuite) TestBackendDownDegradesToMiss() {
	ctx := context.Background()
	s.store.Set(ctx, "c1", s.complaint("c1"))

	s.mini.Close()

	// A broken cache backend must read as stale miss, never as an error.
	s.True(s.store.IsStale(ctx, "c1"))
	_, ok := s.store.Get(ctx, "c1")
	s.False(ok)
}
