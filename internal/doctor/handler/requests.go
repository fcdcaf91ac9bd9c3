package handler

import (
	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/models"
	"healthsphere/pkg/datauri"
	s "healthsphere/pkg/string"
	"healthsphere/pkg/validation"
)

// ProfileRequest holds the profile fields shared by both signup endpoints.
type ProfileRequest struct {
	FullName        string `json:"full_name" validate:"required,notblank,max=200"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Phone           string `json:"phone" validate:"omitempty,phone"`
	Specialization  string `json:"specialization" validate:"required,notblank,max=200"`
	LicenseNumber   string `json:"license_number" validate:"required,license"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0,lte=80"`
	ClinicName      string `json:"clinic_name" validate:"max=200"`
}

func (r *ProfileRequest) Normalize() {
	s.TrimStrings(&r.FullName, &r.Email, &r.Phone, &r.Specialization, &r.LicenseNumber, &r.ClinicName)
	r.FullName = s.CollapseSpaces(r.FullName)
}

func (r *ProfileRequest) Validate() error {
	return validation.Validate(r)
}

func (r *ProfileRequest) profile() models.Profile {
	return models.Profile{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		Specialization:  r.Specialization,
		LicenseNumber:   r.LicenseNumber,
		ExperienceYears: r.ExperienceYears,
		ClinicName:      r.ClinicName,
	}
}

// SignupRequest is the JSON body of POST /doctors/signup.
type SignupRequest struct {
	ProfileRequest
	DocumentDataURI string `json:"document_data_uri" validate:"required"`
}

func (r *SignupRequest) Normalize() {
	r.ProfileRequest.Normalize()
	s.TrimStrings(&r.DocumentDataURI)
}

func (r *SignupRequest) Validate() error {
	return validation.Validate(r)
}

// ToModel decodes the document and builds the service input.
func (r *SignupRequest) ToModel() (models.Signup, error) {
	doc, err := decodeDocument(r.DocumentDataURI)
	if err != nil {
		return models.Signup{}, err
	}
	return models.Signup{Profile: r.profile(), Document: doc}, nil
}

// ReverifyRequest is the JSON body of POST /doctors/{id}/reverify.
type ReverifyRequest struct {
	DocumentDataURI string `json:"document_data_uri" validate:"required"`
	LicenseNumber   string `json:"license_number" validate:"omitempty,license"`
}

func (r *ReverifyRequest) Normalize() {
	s.TrimStrings(&r.DocumentDataURI, &r.LicenseNumber)
}

func (r *ReverifyRequest) Validate() error {
	return validation.Validate(r)
}

// RejectRequest is the JSON body of POST /admin/verifications/{id}/reject.
type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (r *RejectRequest) Normalize() {
	s.TrimStrings(&r.Reason)
}

func (r *RejectRequest) Validate() error {
	return validation.Validate(r)
}

func decodeDocument(raw string) (verification.Document, error) {
	doc, err := datauri.Parse(raw)
	if err != nil {
		return verification.Document{}, err
	}
	return verification.Document{Data: doc.Data, MIMEType: doc.MIMEType}, nil
}
