package check

import (
	"context"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetToken() string
}

// RegisterSteps registers availability check step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &checkSteps{tc: tc}

	ctx.Step(`^I check domain "([^"]*)"$`, steps.checkWithSavedToken)
	ctx.Step(`^I check domain "([^"]*)" without a token$`, steps.checkWithoutToken)
	ctx.Step(`^I check domain "([^"]*)" with token "([^"]*)"$`, steps.checkWithToken)
	ctx.Step(`^I check without a domain parameter$`, steps.checkWithoutDomain)
}

type checkSteps struct {
	tc TestContext
}

func (s *checkSteps) checkWithSavedToken(ctx context.Context, domain string) error {
	return s.checkWithToken(ctx, domain, s.tc.GetToken())
}

func (s *checkSteps) checkWithoutToken(ctx context.Context, domain string) error {
	return s.tc.GET(checkPath(domain), nil)
}

func (s *checkSteps) checkWithToken(ctx context.Context, domain, token string) error {
	return s.tc.GET(checkPath(domain), map[string]string{
		"Authorization": "Bearer " + token,
	})
}

func (s *checkSteps) checkWithoutDomain(ctx context.Context) error {
	return s.tc.GET("/api/check", map[string]string{
		"Authorization": "Bearer " + s.tc.GetToken(),
	})
}

func checkPath(domain string) string {
	return "/api/check?" + url.Values{"domain": {domain}}.Encode()
}
