package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	staleChecksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redress_cache_stale_checks_total",
		Help: "Staleness checks by domain and outcome (fresh, stale, miss)",
	}, []string{"domain", "result"})

	writesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redress_cache_writes_total",
		Help: "Cache slot replacements by domain",
	}, []string{"domain"})

	invalidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redress_cache_invalidations_total",
		Help: "Cache invalidations by domain",
	}, []string{"domain"})
)

func observeStaleCheck(domain Domain, populated, stale bool) {
	result := "fresh"
	switch {
	case !populated:
		result = "miss"
	case stale:
		result = "stale"
	}
	staleChecksTotal.WithLabelValues(string(domain), result).Inc()
}
