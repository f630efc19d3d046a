package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CacheDegraded    prometheus.Counter
	LookupDuration   *prometheus.HistogramVec
	UpstreamFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doppel_cache_hits_total",
			Help: "Lookups served straight from the composite cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doppel_cache_misses_total",
			Help: "Lookups that had to run the fetch-and-analyze path",
		}),
		CacheDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doppel_cache_degraded_total",
			Help: "Cache operations absorbed because the store was unavailable",
		}),
		LookupDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "doppel_lookup_duration_seconds",
			Help:    "End to end lookup latency by terminal state",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		}, []string{"outcome"}),
		UpstreamFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doppel_upstream_failures_total",
			Help: "Provider failures by upstream name",
		}, []string{"upstream"}),
	}
}

// ObserveLookup records one finished lookup with its terminal state.
func (m *Metrics) ObserveLookup(outcome string, elapsed time.Duration) {
	m.LookupDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// IncrementUpstreamFailure counts one provider failure.
func (m *Metrics) IncrementUpstreamFailure(upstream string) {
	m.UpstreamFailures.WithLabelValues(upstream).Inc()
}
