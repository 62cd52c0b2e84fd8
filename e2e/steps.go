package e2e

import (
	"github.com/cucumber/godog"

	"domaincheck/e2e/steps/check"
	"domaincheck/e2e/steps/common"
	"domaincheck/e2e/steps/token"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background, status and body assertions
	common.RegisterSteps(ctx, tc)

	// Token issuance
	token.RegisterSteps(ctx, tc)

	// Availability checks
	check.RegisterSteps(ctx, tc)
}
