// Package client talks to a running domain availability API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 60 * time.Second

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Message)
}

// Result is one answered check.
type Result struct {
	Domain    string `json:"domain"`
	Available bool   `json:"available"`
	WhoisData string `json:"whoisData"`
}

// Client calls the token and check endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a Client for the API at baseURL.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{Timeout: defaultTimeout})
}

// NewWithHTTPClient builds a Client with a caller supplied http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Token exchanges apiKey for a bearer token.
func (c *Client) Token(ctx context.Context, apiKey string) (string, error) {
	payload, err := json.Marshal(map[string]string{"apiKey": apiKey})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/token", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var res struct {
		Token string `json:"token"`
	}
	if err := c.do(req, &res); err != nil {
		return "", err
	}
	return res.Token, nil
}

// Check asks the API about domain. An empty token sends no Authorization
// header, which suits servers running with auth disabled.
func (c *Client) Check(ctx context.Context, token, domain string) (*Result, error) {
	q := url.Values{"domain": {domain}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/check?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	var res Result
	if err := c.do(req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
			body.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: body.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}
