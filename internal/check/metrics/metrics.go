package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for CheckOutcome. The classifier contributes "available" and
// "unavailable".
const (
	OutcomeInvalid     = "invalid"
	OutcomeLookupError = "lookup_error"
)

// Metrics provides observability for the domain check pipeline.
type Metrics struct {
	// Check outcomes: available, unavailable, invalid, lookup_error
	CheckOutcome *prometheus.CounterVec

	// WHOIS round-trip latency by result
	LookupLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CheckOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domaincheck_check_outcomes_total",
			Help: "Total domain checks by outcome",
		}, []string{"outcome"}),

		LookupLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "domaincheck_whois_lookup_duration_seconds",
			Help:    "Duration of WHOIS lookups including referrals",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"result"}), // result: "ok", "error"
	}
}

// IncrementOutcome records a check outcome.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(outcome).Inc()
	}
}

// ObserveLookupLatency records the duration of one WHOIS lookup.
func (m *Metrics) ObserveLookupLatency(d time.Duration, ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.LookupLatency.WithLabelValues(result).Observe(d.Seconds())
}
