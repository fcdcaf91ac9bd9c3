package admin

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POSTWithHeaders(path string, body interface{}, headers map[string]string) error
	GET(path string, headers map[string]string) error
	GetAdminToken() string
	GetDoctorID() string
	ResponseContains(text string) bool
}

// RegisterSteps registers admin review step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	// Review queue
	ctx.Step(`^I list pending verifications as admin$`, steps.listPending)
	ctx.Step(`^I list pending verifications without admin token$`, steps.listPendingWithoutToken)
	ctx.Step(`^I list pending verifications with admin token "([^"]*)"$`, steps.listPendingWithToken)
	ctx.Step(`^I approve the doctor as admin$`, steps.approve)
	ctx.Step(`^I reject the doctor as admin with reason "([^"]*)"$`, steps.reject)
	ctx.Step(`^the response should contain the saved doctor ID$`, steps.queueContainsDoctor)
	ctx.Step(`^the response should not contain the saved doctor ID$`, steps.queueOmitsDoctor)

	// Audit
	ctx.Step(`^I get the admin stats$`, steps.getStats)
	ctx.Step(`^I get the doctor's audit trail$`, steps.getAuditTrail)
}

type adminSteps struct {
	tc TestContext
}

func (s *adminSteps) headers() map[string]string {
	return map[string]string{
		"X-Admin-Token":    s.tc.GetAdminToken(),
		"X-Admin-Actor-ID": "e2e-reviewer",
	}
}

func (s *adminSteps) listPending(ctx context.Context) error {
	return s.tc.GET("/admin/verifications", s.headers())
}

func (s *adminSteps) listPendingWithoutToken(ctx context.Context) error {
	return s.tc.GET("/admin/verifications", nil)
}

func (s *adminSteps) listPendingWithToken(ctx context.Context, token string) error {
	return s.tc.GET("/admin/verifications", map[string]string{
		"X-Admin-Token": token,
	})
}

func (s *adminSteps) approve(ctx context.Context) error {
	return s.tc.POSTWithHeaders("/admin/verifications/"+s.tc.GetDoctorID()+"/approve", map[string]interface{}{}, s.headers())
}

func (s *adminSteps) reject(ctx context.Context, reason string) error {
	return s.tc.POSTWithHeaders("/admin/verifications/"+s.tc.GetDoctorID()+"/reject", map[string]interface{}{
		"reason": reason,
	}, s.headers())
}

func (s *adminSteps) getStats(ctx context.Context) error {
	return s.tc.GET("/admin/stats", s.headers())
}

func (s *adminSteps) getAuditTrail(ctx context.Context) error {
	return s.tc.GET("/admin/audit/doctors/"+s.tc.GetDoctorID(), s.headers())
}

func (s *adminSteps) queueContainsDoctor(ctx context.Context) error {
	if !s.tc.ResponseContains(s.tc.GetDoctorID()) {
		return fmt.Errorf("expected response to contain doctor %s", s.tc.GetDoctorID())
	}
	return nil
}

func (s *adminSteps) queueOmitsDoctor(ctx context.Context) error {
	if s.tc.ResponseContains(s.tc.GetDoctorID()) {
		return fmt.Errorf("expected response not to contain doctor %s", s.tc.GetDoctorID())
	}
	return nil
}
