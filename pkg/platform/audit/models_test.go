package audit

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// AuditEventSuite checks the category mapping, including the operations
// fallback for events it does not know.
type AuditEventSuite struct {
	suite.Suite
}

func TestAuditEventSuite(t *testing.T) {
	suite.Run(t, new(AuditEventSuite))
}

func (s *AuditEventSuite) TestComplianceEvents() {
	for _, e := range []AuditEvent{
		EventVerificationCompleted,
		EventDoctorVerified,
		EventDoctorRejected,
		EventSignupRejected,
		EventAdminApproved,
		EventAdminRejected,
	} {
		s.Equal(CategoryCompliance, e.Category(), e)
	}
}

func (s *AuditEventSuite) TestSecurityEvents() {
	s.Equal(CategorySecurity, EventAdminAuthFailed.Category())
}

func (s *AuditEventSuite) TestFallbackToOperations() {
	s.Equal(CategoryOperations, EventVerificationFailed.Category())
	s.Equal(CategoryOperations, EventDoctorViewed.Category())
	s.Equal(CategoryOperations, AuditEvent("something_new").Category())
}
