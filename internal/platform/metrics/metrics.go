package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP and token gate metrics shared across the service.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	TokensIssued    *prometheus.CounterVec
	TokenRejections *prometheus.CounterVec
}

// New creates and registers all platform metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "domaincheck_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by route pattern, method and status",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"route", "method", "status"}),

		TokensIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domaincheck_tokens_issued_total",
			Help: "Token issuance attempts by outcome",
		}, []string{"outcome"}), // outcome: "issued", "rejected"

		TokenRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "domaincheck_token_rejections_total",
			Help: "Bearer tokens rejected by the gate by reason",
		}, []string{"reason"}), // reason: "missing", "invalid", "expired"
	}
}

// ObserveRequest records the duration of an HTTP request.
func (m *Metrics) ObserveRequest(route, method, status string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, method, status).Observe(d.Seconds())
	}
}

// IncrementTokenIssue records a token issuance attempt.
func (m *Metrics) IncrementTokenIssue(outcome string) {
	if m != nil {
		m.TokensIssued.WithLabelValues(outcome).Inc()
	}
}

// IncrementTokenRejection records a rejected bearer token.
func (m *Metrics) IncrementTokenRejection(reason string) {
	if m != nil {
		m.TokenRejections.WithLabelValues(reason).Inc()
	}
}
