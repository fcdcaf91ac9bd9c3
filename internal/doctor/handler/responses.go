package handler

import (
	"time"

	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/models"
)

type DoctorResponse struct {
	ID                 string    `json:"id"`
	FullName           string    `json:"full_name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Specialization     string    `json:"specialization"`
	LicenseNumber      string    `json:"license_number"`
	ExperienceYears    int       `json:"experience_years"`
	ClinicName         string    `json:"clinic_name,omitempty"`
	IsVerified         bool      `json:"is_verified"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type OutcomeResponse struct {
	Score       int    `json:"score"`
	Summary     string `json:"summary"`
	Band        string `json:"band"`
	Registered  bool   `json:"registered"`
	MatchedName string `json:"matched_name,omitempty"`
	Registry    string `json:"registry"`
}

// ResultResponse is returned when a verification run was accepted, and for
// every reverification.
type ResultResponse struct {
	Doctor       *DoctorResponse `json:"doctor,omitempty"`
	Verification OutcomeResponse `json:"verification"`
	Accepted     bool            `json:"accepted"`
	Threshold    int             `json:"threshold"`
}

// RejectionResponse is the 422 body for a signup below the threshold. It keeps
// the usual error shape and adds the outcome so the client can ask for a
// clearer document.
type RejectionResponse struct {
	Error            string          `json:"error"`
	ErrorDescription string          `json:"error_description"`
	Verification     OutcomeResponse `json:"verification"`
	Threshold        int             `json:"threshold"`
}

type AttemptResponse struct {
	ID            string    `json:"id"`
	LicenseNumber string    `json:"license_number"`
	Score         int       `json:"score"`
	Summary       string    `json:"summary"`
	Band          string    `json:"band"`
	Accepted      bool      `json:"accepted"`
	CreatedAt     time.Time `json:"created_at"`
}

type PendingReviewResponse struct {
	Doctor        *DoctorResponse  `json:"doctor"`
	LatestAttempt *AttemptResponse `json:"latest_attempt,omitempty"`
}

func toDoctorResponse(d *models.Doctor) *DoctorResponse {
	if d == nil {
		return nil
	}
	return &DoctorResponse{
		ID:                 d.ID.String(),
		FullName:           d.FullName,
		Email:              d.Email,
		Phone:              d.Phone,
		Specialization:     d.Specialization,
		LicenseNumber:      d.LicenseNumber.String(),
		ExperienceYears:    d.ExperienceYears,
		ClinicName:         d.ClinicName,
		IsVerified:         d.IsVerified,
		VerificationStatus: string(d.VerificationStatus),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func toOutcomeResponse(o verification.Outcome) OutcomeResponse {
	return OutcomeResponse{
		Score:       o.Score,
		Summary:     o.Summary,
		Band:        string(o.Band),
		Registered:  o.Registered,
		MatchedName: o.MatchedName,
		Registry:    o.RegistryName,
	}
}

func toResultResponse(r *models.Result) *ResultResponse {
	return &ResultResponse{
		Doctor:       toDoctorResponse(r.Doctor),
		Verification: toOutcomeResponse(r.Outcome),
		Accepted:     r.Accepted,
		Threshold:    r.Threshold,
	}
}

func toAttemptResponse(a *models.Attempt) *AttemptResponse {
	if a == nil {
		return nil
	}
	return &AttemptResponse{
		ID:            a.ID.String(),
		LicenseNumber: a.LicenseNumber.Redacted(),
		Score:         a.Score,
		Summary:       a.Summary,
		Band:          string(a.Band),
		Accepted:      a.Accepted,
		CreatedAt:     a.CreatedAt,
	}
}

func toAttemptResponses(attempts []*models.Attempt) []*AttemptResponse {
	out := make([]*AttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, toAttemptResponse(a))
	}
	return out
}

func toPendingResponses(items []models.PendingReview) []PendingReviewResponse {
	out := make([]PendingReviewResponse, 0, len(items))
	for _, item := range items {
		out = append(out, PendingReviewResponse{
			Doctor:        toDoctorResponse(item.Doctor),
			LatestAttempt: toAttemptResponse(item.LatestAttempt),
		})
	}
	return out
}
