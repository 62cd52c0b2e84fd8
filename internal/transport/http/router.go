// Package httptransport assembles the public HTTP surface: global middleware,
// the index and health routes, metrics exposition and the feature handlers.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"domaincheck/internal/platform/metrics"
	"domaincheck/internal/platform/middleware"
	"domaincheck/pkg/platform/httputil"
)

// Registrar mounts a feature's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps is everything the router needs. TokenHandler is nil when auth is
// disabled, in which case /api/token is not served.
type Deps struct {
	Logger             *slog.Logger
	Metrics            *metrics.Metrics
	Gatherer           prometheus.Gatherer
	CORSAllowedOrigins []string
	TokenHandler       Registrar
	CheckHandler       Registrar
}

// IndexResponse describes the API at GET /.
type IndexResponse struct {
	Message   string    `json:"message"`
	Endpoints Endpoints `json:"endpoints"`
}

// Endpoints lists the public API paths.
type Endpoints struct {
	Token       string `json:"token,omitempty"`
	CheckDomain string `json:"checkDomain"`
}

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.LatencyMiddleware(d.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	index := IndexResponse{
		Message:   "Domain Availability API",
		Endpoints: Endpoints{CheckDomain: "/api/check?domain=example.com"},
	}
	if d.TokenHandler != nil {
		index.Endpoints.Token = "/api/token"
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, index)
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	if d.TokenHandler != nil {
		d.TokenHandler.Register(r)
	}
	d.CheckHandler.Register(r)

	return r
}
