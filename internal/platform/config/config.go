// Package config builds runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"time"

	"redress/internal/cache"
	"redress/internal/upstream"
)

// Config is everything the server needs to start.
type Config struct {
	Addr     string
	Upstream upstream.Config
	RedisURL string
	TTLs     cache.TTLs
}

// FromEnv reads REDRESS_* variables with development defaults. An empty
// REDRESS_REDIS_URL keeps the in-memory detail store.
func FromEnv() Config {
	cfg := Config{
		Addr: envString("REDRESS_ADDR", ":8080"),
		Upstream: upstream.Config{
			BaseURL: envString("REDRESS_UPSTREAM_URL", "http://localhost:3000"),
			Timeout: envDuration("REDRESS_UPSTREAM_TIMEOUT", 15*time.Second),
			Retries: envInt("REDRESS_UPSTREAM_RETRIES", 2),
			Backoff: envDuration("REDRESS_UPSTREAM_BACKOFF", 250*time.Millisecond),
		},
		RedisURL: os.Getenv("REDRESS_REDIS_URL"),
		TTLs:     cache.DefaultTTLs(),
	}

	// TTL overrides are for operators chasing staleness bugs, not tuning.
	cfg.TTLs.Stats = envDuration("REDRESS_TTL_STATS", cfg.TTLs.Stats)
	cfg.TTLs.Complaints = envDuration("REDRESS_TTL_COMPLAINTS", cfg.TTLs.Complaints)
	cfg.TTLs.Detail = envDuration("REDRESS_TTL_DETAIL", cfg.TTLs.Detail)
	cfg.TTLs.Users = envDuration("REDRESS_TTL_USERS", cfg.TTLs.Users)
	cfg.TTLs.Reference = envDuration("REDRESS_TTL_REFERENCE", cfg.TTLs.Reference)
	cfg.TTLs.Notifications = envDuration("REDRESS_TTL_NOTIFICATIONS", cfg.TTLs.Notifications)
	return cfg
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
