package models

import (
	"fmt"
	"time"

	verification "healthsphere/contracts/verification"
	id "healthsphere/pkg/domain"
)

// Status is the verification status shown on a doctor profile.
type Status string

const (
	StatusVerifiedByAI       Status = "Verified by AI"
	StatusVerificationFailed Status = "Verification Failed"
	StatusPendingReview      Status = "Pending Review"
	StatusApprovedByAdmin    Status = "Approved by Admin"
	StatusRejectedByAdmin    Status = "Rejected by Admin"
)

// AwaitingReview reports whether an admin still has to look at the profile.
func (s Status) AwaitingReview() bool {
	return s == StatusVerificationFailed || s == StatusPendingReview
}

// Doctor is a doctor profile. IsVerified and VerificationStatus are only ever
// changed by the doctor service.
type Doctor struct {
	ID                 id.DoctorID
	FullName           string
	Email              string
	Phone              string
	Specialization     string
	LicenseNumber      id.LicenseNumber
	ExperienceYears    int
	ClinicName         string
	IsVerified         bool
	VerificationStatus Status
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Attempt is one verification run recorded against a profile.
type Attempt struct {
	ID            id.AttemptID
	DoctorID      id.DoctorID
	LicenseNumber id.LicenseNumber
	Score         int
	Summary       string
	Band          verification.Band
	Accepted      bool
	CreatedAt     time.Time
}

// Profile holds the fields a doctor fills in at signup.
type Profile struct {
	FullName        string
	Email           string
	Phone           string
	Specialization  string
	LicenseNumber   string
	ExperienceYears int
	ClinicName      string
}

// Signup is a profile plus the license document to verify.
type Signup struct {
	Profile
	Document verification.Document
}

// Reverify resubmits a document for an existing profile. An empty
// LicenseNumber keeps the one on file.
type Reverify struct {
	DoctorID      id.DoctorID
	Document      verification.Document
	LicenseNumber string
}

// Result is what the doctor service returns after a verification run.
// Doctor is nil when a signup was rejected.
type Result struct {
	Doctor    *Doctor
	Outcome   verification.Outcome
	Accepted  bool
	Threshold int
}

// PendingReview pairs an unverified doctor with their latest attempt, if any.
type PendingReview struct {
	Doctor        *Doctor
	LatestAttempt *Attempt
}

// DefaultInstructions is the context given to the assessor for a signup.
func DefaultInstructions(name, specialization string, license id.LicenseNumber) string {
	return fmt.Sprintf("Verify the medical license for Dr. %s, specializing in %s. License number provided: %s.",
		name, specialization, license)
}
