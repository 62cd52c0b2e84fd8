package handler

// TokenRequest is the body of POST /api/token.
type TokenRequest struct {
	APIKey string `json:"apiKey"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
