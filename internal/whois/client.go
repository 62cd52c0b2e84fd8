// Package whois is the boundary to the WHOIS protocol. It hands one domain to
// the underlying client, which follows the IANA referral chain to the
// authoritative server, and returns the raw text it gets back.
package whois

import (
	"context"
	"fmt"
	"strings"

	lwhois "github.com/likexian/whois"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"domaincheck/internal/platform/config"
	"domaincheck/pkg/platform/sentinel"
)

const tracerName = "domaincheck/internal/whois"

// Querier performs a blocking WHOIS query. *lwhois.Client satisfies it.
type Querier interface {
	Whois(domain string, servers ...string) (string, error)
}

// LookupError reports a failed lookup for a single domain.
type LookupError struct {
	Domain string
	Err    error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("whois lookup failed for %s: %v", e.Domain, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Client adapts a Querier into a context-aware, single-shot lookup.
type Client struct {
	querier Querier
	tracer  trace.Tracer
}

// New builds a Client backed by the likexian WHOIS client.
func New(cfg config.Whois) *Client {
	c := lwhois.NewClient()
	if cfg.Timeout > 0 {
		c.SetTimeout(cfg.Timeout)
	}
	return NewWithQuerier(c)
}

// NewWithQuerier builds a Client around any Querier.
func NewWithQuerier(q Querier) *Client {
	return &Client{
		querier: q,
		tracer:  otel.Tracer(tracerName),
	}
}

type result struct {
	text string
	err  error
}

// Lookup queries WHOIS for domain and returns the raw response text.
//
// The query runs on its own goroutine and delivers exactly one result. If ctx
// ends first Lookup returns early with a LookupError; the query itself is not
// interrupted and its result is discarded.
func (c *Client) Lookup(ctx context.Context, domain string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "whois.Lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("whois.domain", domain)),
	)
	defer span.End()

	ch := make(chan result, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				ch <- result{err: fmt.Errorf("whois client panic: %v: %w", rec, sentinel.ErrUnavailable)}
			}
		}()
		text, err := c.querier.Whois(domain)
		ch <- result{text: text, err: err}
	}()

	var res result
	select {
	case <-ctx.Done():
		res.err = ctx.Err()
	case res = <-ch:
	}

	if res.err == nil && strings.TrimSpace(res.text) == "" {
		res.err = sentinel.ErrEmptyResponse
	}
	if res.err != nil {
		span.RecordError(res.err)
		span.SetStatus(codes.Error, "lookup failed")
		return "", &LookupError{Domain: domain, Err: res.err}
	}

	span.SetAttributes(attribute.Int("whois.response_bytes", len(res.text)))
	return res.text, nil
}
