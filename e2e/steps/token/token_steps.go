package token

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastStatus() int
	GetAPIKey() string
	SetToken(token string)
}

// RegisterSteps registers token issuance step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &tokenSteps{tc: tc}

	ctx.Step(`^I request a token with the configured api key$`, steps.requestWithConfiguredKey)
	ctx.Step(`^I request a token with api key "([^"]*)"$`, steps.requestWithKey)
	ctx.Step(`^I have a valid token$`, steps.haveValidToken)
}

type tokenSteps struct {
	tc TestContext
}

func (s *tokenSteps) requestWithConfiguredKey(ctx context.Context) error {
	return s.requestWithKey(ctx, s.tc.GetAPIKey())
}

func (s *tokenSteps) requestWithKey(ctx context.Context, apiKey string) error {
	return s.tc.POST("/api/token", map[string]string{"apiKey": apiKey})
}

func (s *tokenSteps) haveValidToken(ctx context.Context) error {
	if err := s.requestWithConfiguredKey(ctx); err != nil {
		return err
	}
	if status := s.tc.GetLastStatus(); status != 200 {
		return fmt.Errorf("token request failed with status %d", status)
	}
	token, err := s.tc.GetResponseField("token")
	if err != nil {
		return err
	}
	str, ok := token.(string)
	if !ok || str == "" {
		return fmt.Errorf("token missing from response")
	}
	s.tc.SetToken(str)
	return nil
}
