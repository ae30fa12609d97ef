package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification module.
type Metrics struct {
	Lookups        *prometheus.CounterVec
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	LookupDuration prometheus.Histogram
}

// New creates a new Metrics instance with all verification metrics registered.
func New() *Metrics {
	return &Metrics{
		Lookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caregate_certificate_lookups_total",
			Help: "Total certificate verifications by outcome (valid, not_found, expired, revoked)",
		}, []string{"outcome"}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caregate_certificate_cache_hits_total",
			Help: "Certificate lookups served from the cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "caregate_certificate_cache_misses_total",
			Help: "Certificate lookups that fell through to the database",
		}),
		LookupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caregate_certificate_lookup_duration_seconds",
			Help:    "Duration of certificate verification requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementLookup records a verification outcome.
func (m *Metrics) IncrementLookup(outcome string) {
	m.Lookups.WithLabelValues(outcome).Inc()
}

// RecordCacheHit records a lookup served from the cache.
func (m *Metrics) RecordCacheHit() {
	m.CacheHits.Inc()
}

// RecordCacheMiss records a lookup that fell through to the database.
func (m *Metrics) RecordCacheMiss() {
	m.CacheMisses.Inc()
}

// ObserveLookup records the duration of a verification call.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveLookup(start time.Time) {
	m.LookupDuration.Observe(time.Since(start).Seconds())
}
