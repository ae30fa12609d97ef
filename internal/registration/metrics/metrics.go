package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	Registered       *prometheus.CounterVec
	Rejected         *prometheus.CounterVec
	RegisterDuration prometheus.Histogram
}

// New creates a new Metrics instance with all registration metrics registered.
func New() *Metrics {
	return &Metrics{
		Registered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caregate_registrations_total",
			Help: "Total number of successful registrations by role",
		}, []string{"role"}),
		Rejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "caregate_registrations_rejected_total",
			Help: "Total number of rejected registrations by role and reason",
		}, []string{"role", "reason"}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "caregate_register_duration_seconds",
			Help:    "Duration of registration requests end to end",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementRegistered records a successful registration for a role.
func (m *Metrics) IncrementRegistered(role string) {
	m.Registered.WithLabelValues(role).Inc()
}

// IncrementRejected records a rejected registration with its reason
// (validation, duplicate, persistence).
func (m *Metrics) IncrementRejected(role, reason string) {
	m.Rejected.WithLabelValues(role, reason).Inc()
}

// ObserveRegister records the duration of a registration call.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
