// Package domain provides type-safe identifiers and primitives shared across modules.
package domain

import (
	"github.com/google/uuid"

	dErrors "healthsphere/pkg/domain-errors"
)

// Distinct ID types - compiler prevents passing a DoctorID where an AttemptID is expected.
type (
	DoctorID  uuid.UUID
	AttemptID uuid.UUID
)

// NewDoctorID returns a fresh random doctor identifier.
func NewDoctorID() DoctorID { return DoctorID(uuid.New()) }

// NewAttemptID returns a fresh random verification attempt identifier.
func NewAttemptID() AttemptID { return AttemptID(uuid.New()) }

// Parse functions - use at trust boundaries (handlers, API inputs).

func ParseDoctorID(s string) (DoctorID, error) {
	id, err := parseUUID(s, "doctor ID")
	return DoctorID(id), err
}

func ParseAttemptID(s string) (AttemptID, error) {
	id, err := parseUUID(s, "attempt ID")
	return AttemptID(id), err
}

func (id DoctorID) String() string  { return uuid.UUID(id).String() }
func (id AttemptID) String() string { return uuid.UUID(id).String() }

func (id DoctorID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id AttemptID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label+" format")
	}
	if id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" cannot be nil")
	}
	return id, nil
}
