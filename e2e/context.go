package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// TestContext carries per-scenario HTTP state against a running server.
type TestContext struct {
	BaseURL string
	APIKey  string

	client     *http.Client
	lastStatus int
	lastBody   []byte
	token      string
}

// NewTestContext reads E2E_BASE_URL and E2E_API_KEY.
func NewTestContext() *TestContext {
	baseURL := os.Getenv("E2E_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	apiKey := os.Getenv("E2E_API_KEY")
	if apiKey == "" {
		apiKey = "example_api_token_for_testing"
	}
	return &TestContext{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Reset clears response and token state between scenarios.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.token = ""
}

func (tc *TestContext) POST(path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, tc.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequest(http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastBody = body
	return nil
}

// GetResponseField returns a top-level field of the last JSON body. A field
// present with a null value yields (nil, nil).
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %s", tc.lastBody)
	}
	v, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response: %s", field, tc.lastBody)
	}
	return v, nil
}

func (tc *TestContext) GetLastStatus() int { return tc.lastStatus }

func (tc *TestContext) GetLastBody() string { return string(tc.lastBody) }

func (tc *TestContext) GetAPIKey() string { return tc.APIKey }

func (tc *TestContext) GetToken() string { return tc.token }

func (tc *TestContext) SetToken(token string) { tc.token = token }
