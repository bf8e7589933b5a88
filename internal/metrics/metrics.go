// Package metrics holds the Prometheus collectors of the sync engine. They are
// registered on the default registry and served by the /metrics route.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adsync_sync_runs_total",
			Help: "Total number of sync runs by result",
		},
		[]string{"result"}, // "success", "error", "busy", "invalid"
	)

	SyncPhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "adsync_sync_phase_duration_seconds",
			Help:    "Duration of each sync phase in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"phase"}, // "fetch", "diff", "persist", "link", "total"
	)

	SyncRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adsync_sync_records_total",
			Help: "Total number of program rows touched by sync runs",
		},
		[]string{"op"}, // "insert", "update", "delete"
	)

	PageFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adsync_partner_page_fetches_total",
			Help: "Total number of partner program page fetches by result",
		},
		[]string{"result"},
	)

	BusinessFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adsync_partner_business_fetches_total",
			Help: "Total number of business resolutions by result",
		},
		[]string{"result"}, // "cached", "ok", "not_found", "failed"
	)

	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adsync_cache_requests_total",
			Help: "Total number of cache lookups by cache and result",
		},
		[]string{"cache", "result"}, // result: "hit", "miss", "error"
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "adsync_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// ObservePhase records the duration of a sync phase.
func ObservePhase(phase string, d time.Duration) {
	SyncPhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}
