package admin

import (
	"context"
	"time"

	dErrors "healthsphere/pkg/domain-errors"
	"healthsphere/pkg/platform/audit"
)

// statsWindow bounds how many recent audit events GetStats scans.
const statsWindow = 1000

// AuditReader is the read side of the audit store.
type AuditReader interface {
	ListByDoctor(ctx context.Context, doctorID string) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// PendingCounter reports how many doctors await a review.
type PendingCounter interface {
	CountPendingReview(ctx context.Context) (int, error)
}

// Service provides admin-level monitoring over the audit trail.
type Service struct {
	audit   AuditReader
	pending PendingCounter
	now     func() time.Time
}

// NewService creates a new admin service. pending may be nil.
func NewService(auditReader AuditReader, pending PendingCounter) *Service {
	return &Service{audit: auditReader, pending: pending, now: time.Now}
}

// Stats summarizes recent verification activity.
type Stats struct {
	WindowEvents          int       `json:"window_events"`
	VerificationsComplete int       `json:"verifications_completed"`
	VerificationsFailed   int       `json:"verifications_failed"`
	DoctorsVerified       int       `json:"doctors_verified"`
	DoctorsRejected       int       `json:"doctors_rejected"`
	SignupsRejected       int       `json:"signups_rejected"`
	AdminApprovals        int       `json:"admin_approvals"`
	AdminRejections       int       `json:"admin_rejections"`
	AdminAuthFailures     int       `json:"admin_auth_failures"`
	PendingReview         int       `json:"pending_review"`
	Timestamp             time.Time `json:"timestamp"`
}

// GetStats counts the most recent audit events by action.
func (s *Service) GetStats(ctx context.Context) (*Stats, error) {
	events, err := s.audit.ListRecent(ctx, statsWindow)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit events")
	}

	stats := &Stats{WindowEvents: len(events), Timestamp: s.now()}
	for _, e := range events {
		switch audit.AuditEvent(e.Action) {
		case audit.EventVerificationCompleted:
			stats.VerificationsComplete++
		case audit.EventVerificationFailed:
			stats.VerificationsFailed++
		case audit.EventDoctorVerified:
			stats.DoctorsVerified++
		case audit.EventDoctorRejected:
			stats.DoctorsRejected++
		case audit.EventSignupRejected:
			stats.SignupsRejected++
		case audit.EventAdminApproved:
			stats.AdminApprovals++
		case audit.EventAdminRejected:
			stats.AdminRejections++
		case audit.EventAdminAuthFailed:
			stats.AdminAuthFailures++
		}
	}

	if s.pending != nil {
		// Stats stay available when the doctor store is down.
		if n, err := s.pending.CountPendingReview(ctx); err == nil {
			stats.PendingReview = n
		}
	}
	return stats, nil
}

// GetRecentAuditEvents returns up to limit events, newest first.
func (s *Service) GetRecentAuditEvents(ctx context.Context, limit int) ([]audit.Event, error) {
	events, err := s.audit.ListRecent(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit events")
	}
	return events, nil
}

// GetDoctorAuditTrail returns every event recorded for a doctor, newest first.
func (s *Service) GetDoctorAuditTrail(ctx context.Context, doctorID string) ([]audit.Event, error) {
	events, err := s.audit.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit events")
	}
	return events, nil
}
