// Package httputil holds the JSON response helpers shared by all handlers.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	dErrors "domaincheck/pkg/domain-errors"
)

const internalErrorMessage = "Internal server error"

// ErrorResponse is the JSON envelope for every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status and an ErrorResponse. Messages of
// internal errors are replaced so causes never leak to callers.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := StatusAndMessage(err)
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// StatusAndMessage resolves the HTTP status and caller-facing message for err.
func StatusAndMessage(err error) (int, string) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	if code == dErrors.CodeInternal {
		return status, internalErrorMessage
	}
	var de *dErrors.Error
	if errors.As(err, &de) && de.Message != "" {
		return status, de.Message
	}
	return status, http.StatusText(status)
}

// DecodeJSON decodes the request body into T. An empty body yields the zero
// T; a malformed body yields a CodeBadRequest error.
func DecodeJSON[T any](r *http.Request) (*T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return &v, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "Invalid request body")
	}
	return &v, nil
}
