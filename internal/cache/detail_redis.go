package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"redress/internal/portal/models"
	"redress/pkg/platform/clock"
)

const detailKeyPrefix = "redress:detail:"

// redisDetailEntry is the stored shape. FetchedAt lives inside the value
// rather than relying on Redis expiry, because invalidation must clear the
// timestamp while keeping the complaint readable (stale-while-revalidate).
type redisDetailEntry struct {
	Complaint models.Complaint `json:"complaint"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// RedisDetailStore is the Redis-backed DetailStore. Backend errors are
// logged and degrade to "miss"/"stale" so read paths never fail; a broken
// cache costs a refetch, not a request.
type RedisDetailStore struct {
	client *redis.Client
	ttl    time.Duration
	clock  clock.Clock
	logger *slog.Logger
}

// NewRedisDetailStore creates a Redis-backed detail store.
func NewRedisDetailStore(client *redis.Client, ttl TTLs, clk clock.Clock, logger *slog.Logger) *RedisDetailStore {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisDetailStore{client: client, ttl: ttl.Detail, clock: clk, logger: logger}
}

func (s *RedisDetailStore) Get(ctx context.Context, id string) (models.Complaint, bool) {
	e, ok := s.load(ctx, id)
	if !ok {
		return models.Complaint{}, false
	}
	return e.Complaint, true
}

func (s *RedisDetailStore) Set(ctx context.Context, id string, c models.Complaint) {
	e := redisDetailEntry{Complaint: c, FetchedAt: s.clock.Now()}
	payload, err := json.Marshal(e)
	if err != nil {
		s.logger.WarnContext(ctx, "detail cache encode failed", "id", id, "error", err)
		return
	}
	if err := s.client.Set(ctx, detailKeyPrefix+id, payload, 0).Err(); err != nil {
		s.logger.WarnContext(ctx, "detail cache write failed", "id", id, "error", err)
		return
	}
	writesTotal.WithLabelValues(string(DomainDetail)).Inc()
}

func (s *RedisDetailStore) IsStale(ctx context.Context, id string) bool {
	e, ok := s.load(ctx, id)
	stale := !ok || e.FetchedAt.IsZero() || s.clock.Now().Sub(e.FetchedAt) >= s.ttl
	observeStaleCheck(DomainDetail, ok, stale)
	return stale
}

func (s *RedisDetailStore) Invalidate(ctx context.Context, id string) {
	e, ok := s.load(ctx, id)
	if ok {
		e.FetchedAt = time.Time{}
		if payload, err := json.Marshal(e); err == nil {
			if err := s.client.Set(ctx, detailKeyPrefix+id, payload, 0).Err(); err != nil {
				s.logger.WarnContext(ctx, "detail cache invalidate failed", "id", id, "error", err)
			}
		}
	}
	invalidationsTotal.WithLabelValues(string(DomainDetail)).Inc()
}

func (s *RedisDetailStore) InvalidateAll(ctx context.Context) {
	iter := s.client.Scan(ctx, 0, detailKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.Invalidate(ctx, iter.Val()[len(detailKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		s.logger.WarnContext(ctx, "detail cache scan failed", "error", err)
	}
}

func (s *RedisDetailStore) load(ctx context.Context, id string) (redisDetailEntry, bool) {
	var e redisDetailEntry
	payload, err := s.client.Get(ctx, detailKeyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "detail cache read failed", "id", id, "error", err)
		}
		return e, false
	}
	if err := json.Unmarshal(payload, &e); err != nil {
		s.logger.WarnContext(ctx, "detail cache decode failed", "id", id, "error", err)
		return e, false
	}
	return e, true
}
