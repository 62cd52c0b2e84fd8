package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"domaincheck/pkg/platform/httputil"
	"domaincheck/pkg/requestcontext"
)

// Issuer exchanges an API key for a bearer token.
type Issuer interface {
	Issue(presentedKey string) (string, error)
}

// Handler serves token issuance.
type Handler struct {
	issuer Issuer
	logger *slog.Logger
}

// New constructs a token handler with its dependencies.
func New(issuer Issuer, logger *slog.Logger) *Handler {
	return &Handler{
		issuer: issuer,
		logger: logger,
	}
}

// Register mounts the token endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/token", h.HandleIssue)
}

// HandleIssue handles POST /api/token requests.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, err := httputil.DecodeJSON[TokenRequest](r)
	if err != nil {
		h.logger.WarnContext(ctx, "malformed token request",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	token, err := h.issuer.Issue(req.APIKey)
	if err != nil {
		h.logger.WarnContext(ctx, "token issuance rejected",
			"request_id", requestID,
			"client_ip", requestcontext.ClientIP(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "token issued",
		"request_id", requestID,
	)
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{Token: token})
}
