package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Dispatch outcome labels.
const (
	OutcomeValue    = "value"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Metrics records dispatch outcomes and latencies. Attach to a dispatcher
// with sluice.WithMetrics; a nil *Metrics is a valid no-op receiver.
type Metrics struct {
	dispatches *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	violations prometheus.Counter
}

// New creates and registers the dispatch metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sluice_dispatches_total",
				Help: "Total dispatched exchanges by terminal outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sluice_dispatch_duration_seconds",
				Help:    "Time from subscription to applied response action",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		violations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "sluice_protocol_violations_total",
				Help: "Response actions rejected because the exchange was already complete",
			},
		),
	}
	reg.MustRegister(m.dispatches, m.duration, m.violations)
	return m
}

// ObserveDispatch records one completed dispatch.
func (m *Metrics) ObserveDispatch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.dispatches.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// ObserveViolation records a rejected double-apply.
func (m *Metrics) ObserveViolation() {
	if m == nil {
		return
	}
	m.violations.Inc()
}
