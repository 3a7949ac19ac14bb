// main wires high-level dependencies and keeps the server lifecycle small.
// The sync core lives in internal packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"redress/internal/cache"
	"redress/internal/platform/config"
	"redress/internal/platform/httpserver"
	"redress/internal/platform/logger"
	platformredis "redress/internal/platform/redis"
	"redress/internal/portal/normalize"
	"redress/internal/sync"
	httptransport "redress/internal/transport/http"
	"redress/internal/upstream"
	"redress/pkg/platform/clock"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	log := logger.New(slog.LevelInfo)

	clk := clock.New()

	var cacheOpts []cache.Option
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		cacheOpts = append(cacheOpts,
			cache.WithDetailStore(cache.NewRedisDetailStore(redisClient.Client, cfg.TTLs, clk, log)))
		defer redisClient.Close()
	}
	caches := cache.NewService(cfg.TTLs, clk, cacheOpts...)

	client, err := upstream.New(cfg.Upstream, upstream.WithLogger(log))
	if err != nil {
		log.Error("upstream client init failed", "error", err)
		os.Exit(1)
	}

	syncer, err := sync.New(caches, client, normalize.New(clk), sync.WithLogger(log))
	if err != nil {
		log.Error("sync service init failed", "error", err)
		os.Exit(1)
	}
	invalidator, err := sync.NewInvalidator(caches, sync.WithInvalidatorLogger(log))
	if err != nil {
		log.Error("invalidator init failed", "error", err)
		os.Exit(1)
	}

	handler := httptransport.New(caches, syncer, client, invalidator, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler, log))

	log.Info("starting redress", "addr", cfg.Addr, "upstream", cfg.Upstream.BaseURL)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
