package tokengate

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domaincheck/internal/platform/config"
	"domaincheck/internal/platform/metrics"
	dErrors "domaincheck/pkg/domain-errors"
	"domaincheck/pkg/platform/secrets"
	"domaincheck/pkg/platform/sentinel"
)

const (
	testSecret = "test-signing-key"
	testAPIKey = "example_api_token_for_testing"
)

var authConfig = config.Auth{
	Enabled:   true,
	JWTSecret: testSecret,
	APIKey:    testAPIKey,
	TokenTTL:  DefaultTTL,
}

func Test_IssueAndVerify(t *testing.T) {
	gate := New(authConfig)

	token, err := gate.Issue(testAPIKey)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := gate.Verify(token)
	require.NoError(t, err)
	assert.True(t, claims.Authorized)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now(), time.UnixMilli(claims.Timestamp), time.Minute)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_Issue_WrongKey(t *testing.T) {
	gate := New(authConfig)

	for _, key := range []string{"", "wrong", testAPIKey + " ", "EXAMPLE_API_TOKEN_FOR_TESTING"} {
		_, err := gate.Issue(key)
		require.ErrorIs(t, err, ErrInvalidAPIKey, "key %q", key)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	}
}

func Test_Issue_NoKeyConfigured(t *testing.T) {
	gate := New(config.Auth{JWTSecret: testSecret})

	_, err := gate.Issue("")
	require.ErrorIs(t, err, ErrInvalidAPIKey)
	_, err = gate.Issue("anything")
	require.ErrorIs(t, err, ErrInvalidAPIKey)
}

func Test_Issue_HashedKey(t *testing.T) {
	hash, err := secrets.Hash(testAPIKey)
	require.NoError(t, err)
	gate := New(config.Auth{JWTSecret: testSecret, APIKeyHash: hash})

	token, err := gate.Issue(testAPIKey)
	require.NoError(t, err)
	_, err = gate.Verify(token)
	require.NoError(t, err)

	_, err = gate.Issue("wrong")
	require.ErrorIs(t, err, ErrInvalidAPIKey)
}

func Test_Verify_MissingToken(t *testing.T) {
	_, err := New(authConfig).Verify("")
	require.ErrorIs(t, err, ErrTokenRequired)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func Test_Verify_InvalidToken(t *testing.T) {
	_, err := New(authConfig).Verify("invalid-token-string")
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func Test_Verify_ExpiredToken(t *testing.T) {
	issuedAt := time.Now().Add(-25 * time.Hour)
	past := New(authConfig, WithClock(func() time.Time { return issuedAt }))

	token, err := past.Issue(testAPIKey)
	require.NoError(t, err)

	_, err = New(authConfig).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, sentinel.ErrExpired))
}

func Test_Verify_ValidUntilExpiry(t *testing.T) {
	issuedAt := time.Now()
	token, err := New(authConfig, WithClock(func() time.Time { return issuedAt })).Issue(testAPIKey)
	require.NoError(t, err)

	almost := New(authConfig, WithClock(func() time.Time { return issuedAt.Add(23*time.Hour + 59*time.Minute) }))
	_, err = almost.Verify(token)
	require.NoError(t, err)

	after := New(authConfig, WithClock(func() time.Time { return issuedAt.Add(24*time.Hour + time.Minute) }))
	_, err = after.Verify(token)
	require.ErrorIs(t, err, sentinel.ErrExpired)
}

func Test_Verify_WrongSecret(t *testing.T) {
	other := New(config.Auth{JWTSecret: "another-secret", APIKey: testAPIKey})
	token, err := other.Issue(testAPIKey)
	require.NoError(t, err)

	_, err = New(authConfig).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Verify_SharedSecretAcrossInstances(t *testing.T) {
	token, err := New(authConfig).Issue(testAPIKey)
	require.NoError(t, err)

	_, err = New(authConfig).Verify(token)
	require.NoError(t, err)
}

func Test_Verify_RejectsOtherAlgorithms(t *testing.T) {
	token := signClaims(t, jwt.SigningMethodHS512, Claims{
		Authorized:       true,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})

	_, err := New(authConfig).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Verify_RejectsUnauthorizedClaim(t *testing.T) {
	token := signClaims(t, jwt.SigningMethodHS256, Claims{
		Authorized:       false,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})

	_, err := New(authConfig).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Verify_RequiresExpiry(t *testing.T) {
	token := signClaims(t, jwt.SigningMethodHS256, Claims{Authorized: true})

	_, err := New(authConfig).Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func Test_Metrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	gate := New(authConfig, WithMetrics(m))

	token, err := gate.Issue(testAPIKey)
	require.NoError(t, err)
	_, _ = gate.Issue("wrong")
	_, _ = gate.Verify("")
	_, _ = gate.Verify("garbage")
	_, err = gate.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokensIssued.WithLabelValues("issued")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokensIssued.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenRejections.WithLabelValues("missing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TokenRejections.WithLabelValues("invalid")))
}

func signClaims(t *testing.T, method jwt.SigningMethod, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}
