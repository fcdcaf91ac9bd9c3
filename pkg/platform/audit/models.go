package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time     `json:"timestamp"`
	Category  EventCategory `json:"category"`
	Action    string        `json:"action"`
	// DoctorID is empty for verifications not tied to a profile.
	DoctorID string `json:"doctor_id,omitempty"`
	// LicenseNumber is always stored redacted.
	LicenseNumber string `json:"license_number,omitempty"`
	ActorID       string `json:"actor_id,omitempty"`
	Decision      string `json:"decision,omitempty"`
	Reason        string `json:"reason,omitempty"`
	Score         *int   `json:"score,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
}

// EventCategory groups events by retention and review needs.
type EventCategory string

const (
	// CategoryCompliance covers verification decisions that regulators may ask about.
	CategoryCompliance EventCategory = "compliance"
	// CategorySecurity covers access control events.
	CategorySecurity EventCategory = "security"
	// CategoryOperations covers everything else.
	CategoryOperations EventCategory = "operations"
)

type AuditEvent string

const (
	EventVerificationCompleted AuditEvent = "verification_completed"
	EventVerificationFailed    AuditEvent = "verification_failed"
	EventDoctorVerified        AuditEvent = "doctor_verified"
	EventDoctorRejected        AuditEvent = "doctor_verification_rejected"
	EventSignupRejected        AuditEvent = "signup_rejected"
	EventAdminApproved         AuditEvent = "admin_approved"
	EventAdminRejected         AuditEvent = "admin_rejected"
	EventAdminAuthFailed       AuditEvent = "admin_auth_failed"
	EventDoctorViewed          AuditEvent = "doctor_viewed"
)

// Category maps an event to its category. Unknown events fall back to operations.
func (e AuditEvent) Category() EventCategory {
	switch e {
	case EventDoctorVerified, EventDoctorRejected, EventSignupRejected,
		EventAdminApproved, EventAdminRejected, EventVerificationCompleted:
		return CategoryCompliance
	case EventAdminAuthFailed:
		return CategorySecurity
	default:
		return CategoryOperations
	}
}

// Sink accepts events. Kafka and stores both implement it.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// Store is a queryable sink.
type Store interface {
	Sink
	ListByDoctor(ctx context.Context, doctorID string) ([]Event, error)
	ListRecent(ctx context.Context, limit int) ([]Event, error)
}
