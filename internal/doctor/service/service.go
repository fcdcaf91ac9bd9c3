// Package service owns doctor profiles and applies the acceptance threshold to
// verification outcomes. It is the only place a score turns into accept or
// reject.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/metrics"
	"healthsphere/internal/doctor/models"
	"healthsphere/internal/doctor/ports"
	"healthsphere/internal/sentinel"
	id "healthsphere/pkg/domain"
	dErrors "healthsphere/pkg/domain-errors"
	"healthsphere/pkg/platform/audit"
	"healthsphere/pkg/platform/privacy"
	platformsync "healthsphere/pkg/platform/sync"
	"healthsphere/pkg/platform/validation"
	"healthsphere/pkg/requestcontext"
)

// DefaultThreshold is the minimum score that verifies a profile.
const DefaultThreshold = 75

// defaultReviewLimit caps the admin review queue.
const defaultReviewLimit = 100

// Store defines the persistence interface for doctors and attempts.
// Error Contract:
// - Get and FindByEmail return sentinel.ErrNotFound when no record exists
// - CreateWithAttempt returns sentinel.ErrConflict on a duplicate email and
//   persists neither record on any failure
// - Update returns sentinel.ErrNotFound when the doctor does not exist
// - ListAwaitingReview and CountAwaitingReview only see statuses for which
//   Status.AwaitingReview is true
type Store interface {
	CreateWithAttempt(ctx context.Context, doctor *models.Doctor, attempt *models.Attempt) error
	Get(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	Update(ctx context.Context, doctor *models.Doctor) error
	ListAwaitingReview(ctx context.Context, limit int) ([]*models.Doctor, error)
	CountAwaitingReview(ctx context.Context) (int, error)
	SaveAttempt(ctx context.Context, attempt *models.Attempt) error
	ListAttempts(ctx context.Context, doctorID id.DoctorID) ([]*models.Attempt, error)
}

type Option func(*Service)

// Service manages doctor profiles.
type Service struct {
	store     Store
	verifier  ports.VerificationPort
	auditor   *audit.Logger
	metrics   *metrics.Metrics
	logger    *slog.Logger
	locks     *platformsync.ShardedMutex
	threshold int
	now       func() time.Time
}

// WithMetrics sets the metrics instance for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger instance for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithAuditor sets the audit logger.
func WithAuditor(a *audit.Logger) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithThreshold overrides the acceptance threshold.
func WithThreshold(threshold int) Option {
	return func(s *Service) {
		if threshold > 0 && threshold <= 100 {
			s.threshold = threshold
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store Store, verifier ports.VerificationPort, opts ...Option) *Service {
	if store == nil {
		panic("service.New: store is required")
	}
	if verifier == nil {
		panic("service.New: verification port is required")
	}
	s := &Service{
		store:     store,
		verifier:  verifier,
		logger:    slog.New(slog.DiscardHandler),
		locks:     platformsync.NewShardedMutex(platformsync.DefaultShards),
		threshold: DefaultThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the acceptance threshold in use.
func (s *Service) Threshold() int {
	return s.threshold
}

// Accepts reports whether score passes the acceptance threshold.
func (s *Service) Accepts(score int) bool {
	return score >= s.threshold
}

// lock serializes work on one key. Callers must call the returned func.
func (s *Service) lock(key string) func() {
	start := time.Now()
	unlock := s.locks.Acquire(key)
	s.metrics.ObserveLockWait(time.Since(start))
	return unlock
}

// Signup verifies the license and creates a verified profile when the score
// passes the threshold. A rejected signup stores nothing and returns a Result
// with Accepted=false. Verification errors are returned unchanged.
func (s *Service) Signup(ctx context.Context, in models.Signup) (*models.Result, error) {
	license, err := validateProfile(in.Profile)
	if err != nil {
		return nil, err
	}

	unlock := s.lock("email:" + normalizeEmail(in.Email))
	defer unlock()

	if _, err := s.store.FindByEmail(ctx, in.Email); err == nil {
		return nil, dErrors.New(dErrors.CodeConflict, "a doctor with this email already exists")
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check existing doctor")
	}

	outcome, err := s.verifier.Verify(ctx, verification.Request{
		Document:          in.Document,
		LicenseNumber:     license.String(),
		AdminInstructions: models.DefaultInstructions(in.FullName, in.Specialization, license),
	})
	if err != nil {
		s.metrics.IncrementSignup(metrics.ResultError)
		return nil, err
	}

	result := &models.Result{Outcome: *outcome, Accepted: s.Accepts(outcome.Score), Threshold: s.threshold}
	if !result.Accepted {
		s.metrics.IncrementSignup(metrics.ResultRejected)
		s.auditor.Record(ctx, audit.EventSignupRejected, audit.Event{
			LicenseNumber: license.Redacted(),
			Decision:      string(outcome.Band),
			Reason:        "score below acceptance threshold",
			Score:         &outcome.Score,
		})
		s.logger.InfoContext(ctx, "doctor signup rejected",
			"email", privacy.MaskEmail(in.Email),
			"license", license.Redacted(),
			"score", outcome.Score,
			"threshold", s.threshold,
		)
		return result, nil
	}

	now := s.now().UTC()
	doctor := &models.Doctor{
		ID:                 id.NewDoctorID(),
		FullName:           in.FullName,
		Email:              normalizeEmail(in.Email),
		Phone:              in.Phone,
		Specialization:     in.Specialization,
		LicenseNumber:      license,
		ExperienceYears:    in.ExperienceYears,
		ClinicName:         in.ClinicName,
		IsVerified:         true,
		VerificationStatus: models.StatusVerifiedByAI,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.store.CreateWithAttempt(ctx, doctor, s.newAttempt(doctor.ID, license, *outcome, true)); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a doctor with this email already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create doctor")
	}

	s.metrics.IncrementSignup(metrics.ResultAccepted)
	s.auditor.Record(ctx, audit.EventDoctorVerified, audit.Event{
		DoctorID:      doctor.ID.String(),
		LicenseNumber: license.Redacted(),
		Decision:      string(models.StatusVerifiedByAI),
		Score:         &outcome.Score,
	})
	s.logger.InfoContext(ctx, "doctor signed up",
		"doctor_id", doctor.ID.String(),
		"license", license.Redacted(),
		"score", outcome.Score,
	)
	result.Doctor = doctor
	return result, nil
}

// Reverify runs a new verification for an existing profile and records the
// attempt whichever way it goes. Only a passing attempt changes the license on
// file; a failing one marks an unverified profile "Verification Failed".
func (s *Service) Reverify(ctx context.Context, in models.Reverify) (*models.Result, error) {
	unlock := s.lock(in.DoctorID.String())
	defer unlock()

	doctor, err := s.get(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}

	license := doctor.LicenseNumber
	if in.LicenseNumber != "" {
		if license, err = id.ParseLicenseNumber(in.LicenseNumber); err != nil {
			return nil, err
		}
	}

	outcome, err := s.verifier.Verify(ctx, verification.Request{
		Document:          in.Document,
		LicenseNumber:     license.String(),
		AdminInstructions: models.DefaultInstructions(doctor.FullName, doctor.Specialization, license),
	})
	if err != nil {
		s.metrics.IncrementReverification(metrics.ResultError)
		return nil, err
	}

	accepted := s.Accepts(outcome.Score)
	action := audit.EventDoctorRejected
	result := metrics.ResultRejected
	changed := false
	switch {
	case accepted:
		doctor.LicenseNumber = license
		doctor.IsVerified = true
		doctor.VerificationStatus = models.StatusVerifiedByAI
		action = audit.EventDoctorVerified
		result = metrics.ResultAccepted
		changed = true
	case !doctor.IsVerified:
		doctor.VerificationStatus = models.StatusVerificationFailed
		changed = true
	}
	// A failed attempt never downgrades a verified profile or replaces its license.
	if changed {
		doctor.UpdatedAt = s.now().UTC()
		if err := s.store.Update(ctx, doctor); err != nil {
			return nil, translateStoreErr(err, "failed to update doctor")
		}
	}
	if err := s.store.SaveAttempt(ctx, s.newAttempt(doctor.ID, license, *outcome, accepted)); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record verification attempt")
	}

	s.metrics.IncrementReverification(result)
	s.auditor.Record(ctx, action, audit.Event{
		DoctorID:      doctor.ID.String(),
		LicenseNumber: license.Redacted(),
		Decision:      string(doctor.VerificationStatus),
		Score:         &outcome.Score,
	})
	return &models.Result{Doctor: doctor, Outcome: *outcome, Accepted: accepted, Threshold: s.threshold}, nil
}

func (s *Service) newAttempt(doctorID id.DoctorID, license id.LicenseNumber, outcome verification.Outcome, accepted bool) *models.Attempt {
	return &models.Attempt{
		ID:            id.NewAttemptID(),
		DoctorID:      doctorID,
		LicenseNumber: license,
		Score:         outcome.Score,
		Summary:       outcome.Summary,
		Band:          outcome.Band,
		Accepted:      accepted,
		CreatedAt:     s.now().UTC(),
	}
}

// Get returns a doctor profile.
// Admin reads are audited as doctor_viewed.
func (s *Service) Get(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	doctor, err := s.get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if requestcontext.AdminActorID(ctx) != "" {
		s.auditor.Record(ctx, audit.EventDoctorViewed, audit.Event{DoctorID: doctor.ID.String()})
	}
	return doctor, nil
}

func (s *Service) get(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	doctor, err := s.store.Get(ctx, doctorID)
	if err != nil {
		return nil, translateStoreErr(err, "failed to load doctor")
	}
	return doctor, nil
}

// ListAttempts returns a doctor's verification attempts, newest first.
func (s *Service) ListAttempts(ctx context.Context, doctorID id.DoctorID) ([]*models.Attempt, error) {
	if _, err := s.get(ctx, doctorID); err != nil {
		return nil, err
	}
	attempts, err := s.store.ListAttempts(ctx, doctorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification attempts")
	}
	return attempts, nil
}

// RequestReview puts an unverified profile in front of an admin.
func (s *Service) RequestReview(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	unlock := s.lock(doctorID.String())
	defer unlock()

	doctor, err := s.get(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor.IsVerified {
		return nil, dErrors.New(dErrors.CodeConflict, "doctor is already verified")
	}
	doctor.VerificationStatus = models.StatusPendingReview
	doctor.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, doctor); err != nil {
		return nil, translateStoreErr(err, "failed to update doctor")
	}
	return doctor, nil
}

// ListPendingReview returns profiles awaiting an admin with their latest AI score.
func (s *Service) ListPendingReview(ctx context.Context, limit int) ([]models.PendingReview, error) {
	if limit <= 0 || limit > defaultReviewLimit {
		limit = defaultReviewLimit
	}
	doctors, err := s.store.ListAwaitingReview(ctx, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list doctors for review")
	}
	out := make([]models.PendingReview, 0, len(doctors))
	for _, d := range doctors {
		attempts, err := s.store.ListAttempts(ctx, d.ID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list verification attempts")
		}
		item := models.PendingReview{Doctor: d}
		if len(attempts) > 0 {
			item.LatestAttempt = attempts[0]
		}
		out = append(out, item)
	}
	s.metrics.SetPendingReview(len(out))
	return out, nil
}

// CountPendingReview returns how many profiles await an admin.
func (s *Service) CountPendingReview(ctx context.Context) (int, error) {
	n, err := s.store.CountAwaitingReview(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count doctors for review")
	}
	s.metrics.SetPendingReview(n)
	return n, nil
}

// Approve manually verifies a profile.
func (s *Service) Approve(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	return s.decide(ctx, doctorID, true, "")
}

// Reject manually marks a profile as not verified.
func (s *Service) Reject(ctx context.Context, doctorID id.DoctorID, reason string) (*models.Doctor, error) {
	if err := validation.CheckStringLength("reason", reason, validation.MaxReasonLength); err != nil {
		return nil, err
	}
	return s.decide(ctx, doctorID, false, reason)
}

func (s *Service) decide(ctx context.Context, doctorID id.DoctorID, approve bool, reason string) (*models.Doctor, error) {
	unlock := s.lock(doctorID.String())
	defer unlock()

	doctor, err := s.get(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	doctor.IsVerified = approve
	doctor.VerificationStatus = models.StatusRejectedByAdmin
	action := audit.EventAdminRejected
	decision := "rejected"
	if approve {
		doctor.VerificationStatus = models.StatusApprovedByAdmin
		action = audit.EventAdminApproved
		decision = "approved"
	}
	doctor.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, doctor); err != nil {
		return nil, translateStoreErr(err, "failed to update doctor")
	}

	s.metrics.IncrementAdminDecision(decision)
	s.auditor.Record(ctx, action, audit.Event{
		DoctorID:      doctor.ID.String(),
		LicenseNumber: doctor.LicenseNumber.Redacted(),
		Decision:      string(doctor.VerificationStatus),
		Reason:        reason,
	})
	return doctor, nil
}

func translateStoreErr(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "doctor not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "a doctor with this email already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}
