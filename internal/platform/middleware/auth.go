package middleware

import (
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Any other form yields "" and is treated as no token presented.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(authHeader, bearerPrefix); ok {
		return strings.TrimSpace(after)
	}
	return ""
}
