package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"domaincheck/internal/check"
	"domaincheck/internal/platform/middleware"
	"domaincheck/internal/tokengate"
	"domaincheck/pkg/platform/httputil"
	"domaincheck/pkg/requestcontext"
)

// Checker runs a domain availability check.
type Checker interface {
	Check(ctx context.Context, domain string) (*check.Verdict, error)
}

// Verifier validates bearer tokens.
type Verifier interface {
	Verify(token string) (*tokengate.Claims, error)
}

// Handler serves availability checks.
type Handler struct {
	checker          Checker
	verifier         Verifier
	includeWhoisData bool
	logger           *slog.Logger
}

// New constructs a check handler. A nil verifier leaves the endpoint public.
func New(checker Checker, verifier Verifier, includeWhoisData bool, logger *slog.Logger) *Handler {
	return &Handler{
		checker:          checker,
		verifier:         verifier,
		includeWhoisData: includeWhoisData,
		logger:           logger,
	}
}

// Register mounts the check endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/check", h.HandleCheck)
}

// HandleCheck handles GET /api/check?domain=<name> requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if h.verifier != nil {
		if _, err := h.verifier.Verify(middleware.BearerToken(r)); err != nil {
			h.logger.WarnContext(ctx, "check rejected by token gate",
				"request_id", requestID,
				"client_ip", requestcontext.ClientIP(ctx),
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}
	}

	domain := r.URL.Query().Get("domain")
	verdict, err := h.checker.Check(ctx, domain)
	if err != nil {
		status, msg := httputil.StatusAndMessage(err)
		if status >= http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "domain check failed",
				"request_id", requestID,
				"domain", domain,
				"error", err,
			)
		} else {
			h.logger.InfoContext(ctx, "domain check rejected",
				"request_id", requestID,
				"domain", domain,
				"reason", msg,
			)
		}
		httputil.WriteJSON(w, status, CheckErrorResponse{Error: msg})
		return
	}

	h.logger.InfoContext(ctx, "domain checked",
		"request_id", requestID,
		"domain", verdict.Domain,
		"available", verdict.Available,
	)
	httputil.WriteJSON(w, http.StatusOK, toCheckResponse(verdict, h.includeWhoisData))
}
