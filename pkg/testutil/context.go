package testutil

import (
	"net/http"

	"domaincheck/pkg/requestcontext"
)

// WithBearerToken sets the Authorization header the way API clients do.
func WithBearerToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

// WithRequestMetadata injects a request ID and client IP into the request
// context. This simulates the middleware chain for handler tests that mount a
// bare router.
func WithRequestMetadata(req *http.Request, requestID, clientIP string) *http.Request {
	ctx := requestcontext.WithRequestID(req.Context(), requestID)
	ctx = requestcontext.WithClientIP(ctx, clientIP)
	return req.WithContext(ctx)
}
