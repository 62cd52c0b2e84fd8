// Package tokengate issues and verifies the bearer tokens that protect the
// domain check endpoint.
//
// Tokens are HS256 JWTs signed with a process-wide secret. Nothing is stored
// server-side: any process holding the same secret verifies any token, and a
// token stays valid until it expires. There is no revocation.
package tokengate

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"domaincheck/internal/platform/config"
	"domaincheck/internal/platform/metrics"
	dErrors "domaincheck/pkg/domain-errors"
	"domaincheck/pkg/platform/secrets"
	"domaincheck/pkg/platform/sentinel"
)

// DefaultTTL is the validity window of an issued token.
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalidAPIKey is returned by Issue for any key that does not match.
	ErrInvalidAPIKey = dErrors.New(dErrors.CodeUnauthorized, "Invalid API key")
	// ErrTokenRequired is returned by Verify when no token was presented.
	ErrTokenRequired = dErrors.New(dErrors.CodeUnauthorized, "Authentication token required")
	// ErrInvalidToken is returned by Verify for bad, tampered or expired tokens.
	ErrInvalidToken = dErrors.New(dErrors.CodeForbidden, "Invalid or expired token")
)

// Claims is the payload of an issued token.
type Claims struct {
	Authorized bool  `json:"authorized"`
	Timestamp  int64 `json:"timestamp"` // issuance time in unix milliseconds
	jwt.RegisteredClaims
}

// Gate issues and verifies tokens. It is safe for concurrent use; all fields
// are read-only after New.
type Gate struct {
	signingKey []byte
	apiKey     string
	apiKeyHash string
	ttl        time.Duration
	now        func() time.Time
	metrics    *metrics.Metrics
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock overrides the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// WithMetrics records issuance and rejection counts.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// New builds a Gate from the auth configuration.
func New(cfg config.Auth, opts ...Option) *Gate {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	g := &Gate{
		signingKey: []byte(cfg.JWTSecret),
		apiKey:     cfg.APIKey,
		apiKeyHash: cfg.APIKeyHash,
		ttl:        ttl,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Issue exchanges the shared API key for a signed token.
func (g *Gate) Issue(presentedKey string) (string, error) {
	if !g.keyMatches(presentedKey) {
		g.metrics.IncrementTokenIssue("rejected")
		return "", ErrInvalidAPIKey
	}

	now := g.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Authorized: true,
		Timestamp:  now.UnixMilli(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
			ID:        uuid.NewString(),
		},
	})

	signed, err := token.SignedString(g.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}
	g.metrics.IncrementTokenIssue("issued")
	return signed, nil
}

func (g *Gate) keyMatches(presented string) bool {
	if presented == "" {
		return false
	}
	if g.apiKeyHash != "" {
		return secrets.Verify(presented, g.apiKeyHash) == nil
	}
	if g.apiKey == "" {
		return false
	}
	return secrets.Equal(presented, g.apiKey)
}

// Verify checks the token's signature and expiry and returns its claims.
func (g *Gate) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		g.metrics.IncrementTokenRejection("missing")
		return nil, ErrTokenRequired
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return g.signingKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			g.metrics.IncrementTokenRejection("expired")
			return nil, dErrors.Wrap(sentinel.ErrExpired, ErrInvalidToken.Code, ErrInvalidToken.Message)
		}
		g.metrics.IncrementTokenRejection("invalid")
		return nil, dErrors.Wrap(err, ErrInvalidToken.Code, ErrInvalidToken.Message)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || !claims.Authorized {
		g.metrics.IncrementTokenRejection("invalid")
		return nil, ErrInvalidToken
	}
	return claims, nil
}
