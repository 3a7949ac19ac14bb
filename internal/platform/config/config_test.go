package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg := FromEnv()

	s.Equal(":8080", cfg.Addr)
	s.Equal("http://localhost:3000", cfg.Upstream.BaseURL)
	s.Equal(2, cfg.Upstream.Retries)
	s.Empty(cfg.RedisURL, "redis stays off unless configured")
	s.Equal(5*time.Minute, cfg.TTLs.Complaints)
	s.Equal(2*time.Minute, cfg.TTLs.Notifications)
	s.Equal(10*time.Minute, cfg.TTLs.Reference)
}

func (s *ConfigSuite) TestEnvOverrides() {
	s.T().Setenv("REDRESS_ADDR", ":9090")
	s.T().Setenv("REDRESS_UPSTREAM_URL", "https://portal.example.com")
	s.T().Setenv("REDRESS_UPSTREAM_RETRIES", "5")
	s.T().Setenv("REDRESS_REDIS_URL", "redis://localhost:6379/0")
	s.T().Setenv("REDRESS_TTL_NOTIFICATIONS", "30s")

	cfg := FromEnv()

	s.Equal(":9090", cfg.Addr)
	s.Equal("https://portal.example.com", cfg.Upstream.BaseURL)
	s.Equal(5, cfg.Upstream.Retries)
	s.Equal("redis://localhost:6379/0", cfg.RedisURL)
	s.Equal(30*time.Second, cfg.TTLs.Notifications)
	s.Equal(5*time.Minute, cfg.TTLs.Stats, "untouched TTLs keep their defaults")
}

func (s *ConfigSuite) TestMalformedValuesFallBack() {
	s.T().Setenv("REDRESS_UPSTREAM_RETRIES", "lots")
	s.T().Setenv("REDRESS_TTL_STATS", "soon")

	cfg := FromEnv()

	s.Equal(2, cfg.Upstream.Retries)
	s.Equal(5*time.Minute, cfg.TTLs.Stats)
}
