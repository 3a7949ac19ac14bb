package sync

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"redress/internal/cache"
)

var (
	fetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "redress_sync_fetches_total",
		Help: "Upstream fetches by domain and outcome",
	}, []string{"domain", "outcome"})

	fetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "redress_sync_fetch_duration_seconds",
		Help:    "Latency of per-domain upstream fetches",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"domain"})
)

// startFetch begins timing one domain fetch; the returned func records the
// outcome.
func startFetch(domain cache.Domain) func(error) {
	start := time.Now()
	return func(err error) {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		fetchesTotal.WithLabelValues(string(domain), outcome).Inc()
		fetchDuration.WithLabelValues(string(domain)).Observe(time.Since(start).Seconds())
	}
}
