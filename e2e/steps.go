package e2e

import (
	"github.com/cucumber/godog"

	"healthsphere/e2e/steps/admin"
	"healthsphere/e2e/steps/common"
	"healthsphere/e2e/steps/doctor"
	"healthsphere/e2e/steps/verification"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	verification.RegisterSteps(ctx, tc)
	doctor.RegisterSteps(ctx, tc)
	admin.RegisterSteps(ctx, tc)
}
