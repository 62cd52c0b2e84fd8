package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Infrastructure layers return these
// (optionally wrapped) so services can translate them into domain errors.
//
//   - ErrExpired: a token's validity window has elapsed
//   - ErrUnavailable: an upstream server could not produce an answer
//   - ErrEmptyResponse: an upstream server answered with nothing
var (
	ErrExpired       = errors.New("expired")
	ErrUnavailable   = errors.New("unavailable")
	ErrEmptyResponse = errors.New("empty response")
)
