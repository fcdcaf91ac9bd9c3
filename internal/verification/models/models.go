package models

import (
	"time"

	id "healthsphere/pkg/domain"
)

// Document is the submitted license image (or PDF) with its MIME type.
type Document struct {
	Data     []byte
	MIMEType string
}

// Request is one verification submission.
type Request struct {
	Document          Document
	LicenseNumber     string
	AdminInstructions string
}

// LookupResult is the registry's answer for one license number.
type LookupResult struct {
	LicenseNumber id.LicenseNumber `json:"license_number"`
	Registered    bool             `json:"registered"`
	MatchedName   string           `json:"matched_name,omitempty"`
	Registry      string           `json:"registry"`
	CheckedAt     time.Time        `json:"checked_at"`
}

// Flag is a specific problem the assessor saw in the document.
type Flag string

const (
	FlagForgery         Flag = "forgery"
	FlagTampering       Flag = "tampering"
	FlagNameMismatch    Flag = "name_mismatch"
	FlagLicenseMismatch Flag = "license_mismatch"
	FlagUnreadable      Flag = "unreadable"
)

// KnownFlags lists every flag the policy understands.
var KnownFlags = []Flag{FlagForgery, FlagTampering, FlagNameMismatch, FlagLicenseMismatch, FlagUnreadable}

// IsKnown reports whether f is one of KnownFlags.
func (f Flag) IsKnown() bool {
	for _, k := range KnownFlags {
		if f == k {
			return true
		}
	}
	return false
}

// Assessment is the document check result before policy banding.
type Assessment struct {
	Score     int
	Summary   string
	Authentic bool
	Flags     []Flag
}

// Flagged reports whether the assessment raised any doubt about the document.
func (a Assessment) Flagged() bool {
	return !a.Authentic || len(a.Flags) > 0
}

// Band is the score range an outcome was placed in.
type Band string

const (
	BandUnregistered Band = "unregistered"
	BandSuspect      Band = "suspect"
	BandVerified     Band = "verified"
)

// Outcome is the final bounded score and summary for one request.
type Outcome struct {
	Score    int
	Summary  string
	Band     Band
	Registry LookupResult
}
