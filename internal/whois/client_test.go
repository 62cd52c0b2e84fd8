package whois

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domaincheck/internal/platform/config"
	"domaincheck/pkg/platform/sentinel"
)

type stubQuerier struct {
	text    string
	err     error
	block   chan struct{}
	panicV  any
	calls   int
	domains []string
}

func (s *stubQuerier) Whois(domain string, _ ...string) (string, error) {
	s.calls++
	s.domains = append(s.domains, domain)
	if s.block != nil {
		<-s.block
	}
	if s.panicV != nil {
		panic(s.panicV)
	}
	return s.text, s.err
}

func TestLookupReturnsRawText(t *testing.T) {
	q := &stubQuerier{text: "No match for \"EXAMPLE-FREE.COM\".\r\n"}
	c := NewWithQuerier(q)

	text, err := c.Lookup(context.Background(), "example-free.com")
	require.NoError(t, err)

	assert.Equal(t, q.text, text)
	assert.Equal(t, 1, q.calls)
	assert.Equal(t, []string{"example-free.com"}, q.domains)
}

func TestLookupWrapsClientError(t *testing.T) {
	cause := errors.New("dial tcp whois.verisign-grs.com:43: i/o timeout")
	c := NewWithQuerier(&stubQuerier{err: cause})

	_, err := c.Lookup(context.Background(), "example.com")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "example.com", lookupErr.Domain)
	assert.ErrorIs(t, err, cause)
}

func TestLookupEmptyResponse(t *testing.T) {
	c := NewWithQuerier(&stubQuerier{text: "  \r\n"})

	_, err := c.Lookup(context.Background(), "example.com")
	require.ErrorIs(t, err, sentinel.ErrEmptyResponse)
}

func TestLookupRecoversPanics(t *testing.T) {
	c := NewWithQuerier(&stubQuerier{panicV: "index out of range"})

	_, err := c.Lookup(context.Background(), "example.com")
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestLookupStopsWaitingOnCancel(t *testing.T) {
	q := &stubQuerier{text: "Domain Name: EXAMPLE.COM", block: make(chan struct{})}
	defer close(q.block)
	c := NewWithQuerier(q)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Lookup(ctx, "example.com")

	var lookupErr *LookupError
	require.ErrorAs(t, err, &lookupErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewBuildsLibraryClient(t *testing.T) {
	c := New(config.Whois{Timeout: 5 * time.Second})
	require.NotNil(t, c.querier)
	require.NotNil(t, c.tracer)
}
