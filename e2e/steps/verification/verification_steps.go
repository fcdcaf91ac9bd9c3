package verification

import (
	"context"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	DocumentDataURI(size int) string
}

// RegisterSteps registers verification step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &verificationSteps{tc: tc}

	ctx.Step(`^I verify license "([^"]*)" with a readable document$`, steps.verifyReadable)
	ctx.Step(`^I verify license "([^"]*)" with an unreadable document$`, steps.verifyUnreadable)
	ctx.Step(`^I verify license "([^"]*)" with instructions "([^"]*)"$`, steps.verifyWithInstructions)
	ctx.Step(`^I verify a document with data URI "([^"]*)"$`, steps.verifyRawDataURI)
}

type verificationSteps struct {
	tc TestContext
}

func (s *verificationSteps) verifyReadable(ctx context.Context, license string) error {
	return s.verify(license, s.tc.DocumentDataURI(2048), "")
}

func (s *verificationSteps) verifyUnreadable(ctx context.Context, license string) error {
	return s.verify(license, s.tc.DocumentDataURI(64), "")
}

func (s *verificationSteps) verifyWithInstructions(ctx context.Context, license, instructions string) error {
	return s.verify(license, s.tc.DocumentDataURI(2048), instructions)
}

func (s *verificationSteps) verifyRawDataURI(ctx context.Context, dataURI string) error {
	return s.tc.POST("/verifications", map[string]interface{}{
		"document_data_uri": dataURI,
	})
}

func (s *verificationSteps) verify(license, dataURI, instructions string) error {
	body := map[string]interface{}{
		"document_data_uri": dataURI,
		"license_number":    license,
	}
	if instructions != "" {
		body["admin_instructions"] = instructions
	}
	return s.tc.POST("/verifications", body)
}
