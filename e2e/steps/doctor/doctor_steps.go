package doctor

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	DocumentDataURI(size int) string
	GetDoctorID() string
	SetDoctorID(id string)
}

// RegisterSteps registers doctor signup and profile step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &doctorSteps{tc: tc}

	ctx.Step(`^I sign up as a doctor with license "([^"]*)"$`, steps.signup)
	ctx.Step(`^I sign up as a doctor with license "([^"]*)" and an unreadable document$`, steps.signupUnreadable)
	ctx.Step(`^I sign up as a doctor with email "([^"]*)" and license "([^"]*)"$`, steps.signupWithEmail)
	ctx.Step(`^I save the doctor ID from the response$`, steps.saveDoctorID)
	ctx.Step(`^I get the doctor profile$`, steps.getProfile)
	ctx.Step(`^I list the doctor's verification attempts$`, steps.listAttempts)
	ctx.Step(`^I request a manual review for the doctor$`, steps.requestReview)
	ctx.Step(`^I reverify the doctor with a readable document$`, steps.reverify)
	ctx.Step(`^I reverify the doctor with an unreadable document$`, steps.reverifyUnreadable)
}

type doctorSteps struct {
	tc TestContext
}

func (s *doctorSteps) signup(ctx context.Context, license string) error {
	return s.post(uniqueEmail(), license, s.tc.DocumentDataURI(2048))
}

func (s *doctorSteps) signupUnreadable(ctx context.Context, license string) error {
	return s.post(uniqueEmail(), license, s.tc.DocumentDataURI(64))
}

func (s *doctorSteps) signupWithEmail(ctx context.Context, email, license string) error {
	return s.post(email, license, s.tc.DocumentDataURI(2048))
}

func (s *doctorSteps) post(email, license, dataURI string) error {
	return s.tc.POST("/doctors/signup", map[string]interface{}{
		"full_name":         "Ayesha Khan",
		"email":             email,
		"specialization":    "Dermatology",
		"license_number":    license,
		"experience_years":  7,
		"document_data_uri": dataURI,
	})
}

func (s *doctorSteps) saveDoctorID(ctx context.Context) error {
	id, err := s.tc.GetResponseField("doctor.id")
	if err != nil {
		return err
	}
	idStr, ok := id.(string)
	if !ok || idStr == "" {
		return fmt.Errorf("doctor.id is not a string: %v", id)
	}
	s.tc.SetDoctorID(idStr)
	return nil
}

func (s *doctorSteps) getProfile(ctx context.Context) error {
	return s.tc.GET("/doctors/"+s.tc.GetDoctorID(), nil)
}

func (s *doctorSteps) listAttempts(ctx context.Context) error {
	return s.tc.GET("/doctors/"+s.tc.GetDoctorID()+"/verifications", nil)
}

func (s *doctorSteps) requestReview(ctx context.Context) error {
	return s.tc.POST("/doctors/"+s.tc.GetDoctorID()+"/review-request", map[string]interface{}{})
}

func (s *doctorSteps) reverify(ctx context.Context) error {
	return s.reverifyWith(s.tc.DocumentDataURI(2048))
}

func (s *doctorSteps) reverifyUnreadable(ctx context.Context) error {
	return s.reverifyWith(s.tc.DocumentDataURI(64))
}

func (s *doctorSteps) reverifyWith(dataURI string) error {
	return s.tc.POST("/doctors/"+s.tc.GetDoctorID()+"/reverify", map[string]interface{}{
		"document_data_uri": dataURI,
	})
}

// uniqueEmail keeps scenarios independent against a shared server.
func uniqueEmail() string {
	return "doctor-" + uuid.NewString()[:8] + "@example.com"
}
