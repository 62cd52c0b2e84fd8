package middleware

import (
	"net"
	"net/http"

	"github.com/mssola/useragent"

	"domaincheck/pkg/requestcontext"
)

// ClientMetadata records the client IP and a short description of the
// client software in the request context. chi's RealIP must run first so
// forwarded addresses are honoured.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithClientIP(r.Context(), ClientIPFromRequest(r))
		ctx = requestcontext.WithUserAgent(ctx, DescribeUserAgent(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIPFromRequest strips the port from RemoteAddr.
func ClientIPFromRequest(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// DescribeUserAgent condenses a User-Agent header to "name/version (os)", or
// "bot:name" for crawlers. Unparseable headers are returned as is.
func DescribeUserAgent(raw string) string {
	if raw == "" {
		return ""
	}
	ua := useragent.New(raw)
	name, version := ua.Browser()
	if name == "" {
		return raw
	}
	if ua.Bot() {
		return "bot:" + name
	}
	desc := name
	if version != "" {
		desc += "/" + version
	}
	if os := ua.OS(); os != "" {
		desc += " (" + os + ")"
	}
	return desc
}
