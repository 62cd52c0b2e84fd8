package check

import (
	"context"
	"time"

	"domaincheck/internal/check/metrics"
	dErrors "domaincheck/pkg/domain-errors"
)

var (
	// ErrMissingDomain is returned when no domain was supplied.
	ErrMissingDomain = dErrors.New(dErrors.CodeBadRequest, "Missing domain parameter")
	// ErrInvalidDomain is returned when the domain fails ValidDomain.
	ErrInvalidDomain = dErrors.New(dErrors.CodeBadRequest, "Invalid domain format")
)

// lookupFailedMessage is what callers see when the WHOIS query fails; the
// cause is only logged.
const lookupFailedMessage = "Error checking domain availability"

// Lookuper fetches the raw WHOIS text for a validated domain.
type Lookuper interface {
	Lookup(ctx context.Context, domain string) (string, error)
}

// Service runs the validate, lookup and classify pipeline.
type Service struct {
	lookuper Lookuper
	metrics  *metrics.Metrics
}

// Option configures a Service.
type Option func(*Service)

// WithMetrics records outcomes and lookup latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs the check service.
func New(lookuper Lookuper, opts ...Option) *Service {
	s := &Service{lookuper: lookuper}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Check validates domain, looks it up once and classifies the response. No
// lookup is issued for a missing or malformed domain. The input is validated
// as given; surrounding whitespace makes it malformed.
func (s *Service) Check(ctx context.Context, domain string) (*Verdict, error) {
	if domain == "" {
		s.metrics.IncrementOutcome(metrics.OutcomeInvalid)
		return nil, ErrMissingDomain
	}
	if !ValidDomain(domain) {
		s.metrics.IncrementOutcome(metrics.OutcomeInvalid)
		return nil, ErrInvalidDomain
	}

	start := time.Now()
	text, err := s.lookuper.Lookup(ctx, domain)
	s.metrics.ObserveLookupLatency(time.Since(start), err == nil)
	if err != nil {
		s.metrics.IncrementOutcome(metrics.OutcomeLookupError)
		return nil, dErrors.Wrap(err, dErrors.CodeLookupFailed, lookupFailedMessage)
	}

	availability := Classify(text)
	s.metrics.IncrementOutcome(availability.String())
	return &Verdict{
		Domain:    domain,
		Available: availability == Available,
		WhoisData: text,
	}, nil
}
