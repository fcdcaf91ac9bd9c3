package service

import (
	"strings"

	"healthsphere/internal/doctor/models"
	id "healthsphere/pkg/domain"
	dErrors "healthsphere/pkg/domain-errors"
	"healthsphere/pkg/platform/validation"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateProfile enforces profile invariants and returns the parsed license.
func validateProfile(p models.Profile) (id.LicenseNumber, error) {
	if err := validation.CheckRequiredWithin("full_name", p.FullName, validation.MaxNameLength); err != nil {
		return "", err
	}
	if err := validation.CheckRequiredWithin("email", p.Email, validation.MaxEmailLength); err != nil {
		return "", err
	}
	if !strings.Contains(p.Email, "@") {
		return "", dErrors.New(dErrors.CodeValidation, "email must be a valid email")
	}
	if err := validation.CheckRequiredWithin("specialization", p.Specialization, validation.MaxNameLength); err != nil {
		return "", err
	}
	if err := validation.CheckStringLength("phone", p.Phone, validation.MaxPhoneLength); err != nil {
		return "", err
	}
	if err := validation.CheckStringLength("clinic_name", p.ClinicName, validation.MaxNameLength); err != nil {
		return "", err
	}
	if p.ExperienceYears < 0 || p.ExperienceYears > 80 {
		return "", dErrors.New(dErrors.CodeValidation, "experience_years must be between 0 and 80")
	}
	return id.ParseLicenseNumber(p.LicenseNumber)
}
