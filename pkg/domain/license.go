package domain

import (
	"strings"
	"unicode"

	dErrors "healthsphere/pkg/domain-errors"
)

// MaxLicenseNumberLength bounds license identifiers accepted at trust boundaries.
const MaxLicenseNumberLength = 64

// LicenseNumber is a medical registration number as printed on a license.
// No registry-specific format is enforced; the registry decides what exists.
type LicenseNumber string

// ParseLicenseNumber trims surrounding whitespace and rejects empty, oversized
// or non-printable values.
func ParseLicenseNumber(s string) (LicenseNumber, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "license number is required")
	}
	if len(s) > MaxLicenseNumberLength {
		return "", dErrors.New(dErrors.CodeValidation, "license number exceeds max length of 64")
	}
	for _, r := range s {
		if !unicode.IsPrint(r) {
			return "", dErrors.New(dErrors.CodeValidation, "license number contains invalid characters")
		}
	}
	return LicenseNumber(s), nil
}

func (l LicenseNumber) String() string { return string(l) }

// Redacted returns the license with all but the last 4 characters masked,
// safe for logs and audit trails.
func (l LicenseNumber) Redacted() string {
	r := []rune(string(l))
	if len(r) <= 4 {
		return "****"
	}
	return "****" + string(r[len(r)-4:])
}
