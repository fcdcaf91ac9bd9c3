//go:build integration

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/models"
	"healthsphere/internal/sentinel"
	id "healthsphere/pkg/domain"
	"healthsphere/pkg/testutil/containers"
)

type PostgresStoreIntegrationSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *PostgresStore
}

func TestPostgresStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreIntegrationSuite))
}

func (s *PostgresStoreIntegrationSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreIntegrationSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateAll(context.Background()))
}

func (s *PostgresStoreIntegrationSuite) TestRoundTrip() {
	ctx := context.Background()
	created := time.Now().UTC().Truncate(time.Microsecond)
	d := newDoctor("ayesha@example.com", true, created)
	d.Phone = "+923001234567"
	d.ClinicName = "Shifa Clinic"

	s.Require().NoError(s.store.Create(ctx, d))

	got, err := s.store.Get(ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(d.Email, got.Email)
	s.Equal(d.ClinicName, got.ClinicName)
	s.Equal(models.StatusVerifiedByAI, got.VerificationStatus)
	s.True(got.CreatedAt.Equal(created))

	byEmail, err := s.store.FindByEmail(ctx, "ayesha@example.com")
	s.Require().NoError(err)
	s.Equal(d.ID, byEmail.ID)
}

func (s *PostgresStoreIntegrationSuite) TestDuplicateEmailConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newDoctor("dup@example.com", true, time.Now())))

	err := s.store.Create(ctx, newDoctor("dup@example.com", true, time.Now()))
	s.ErrorIs(err, sentinel.ErrConflict)
}

func (s *PostgresStoreIntegrationSuite) TestMissingDoctor() {
	_, err := s.store.Get(context.Background(), id.NewDoctorID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreIntegrationSuite) TestReviewQueue() {
	ctx := context.Background()
	base := time.Now().UTC()
	older := newDoctor("older@example.com", false, base.Add(-time.Hour))
	newer := newDoctor("newer@example.com", false, base)
	newer.VerificationStatus = models.StatusPendingReview
	verified := newDoctor("verified@example.com", true, base)
	rejected := newDoctor("rejected@example.com", false, base)
	rejected.VerificationStatus = models.StatusRejectedByAdmin
	for _, d := range []*models.Doctor{newer, verified, older, rejected} {
		s.Require().NoError(s.store.Create(ctx, d))
	}

	queue, err := s.store.ListAwaitingReview(ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(queue, 2)
	s.Equal(older.ID, queue[0].ID)
	s.Equal(newer.ID, queue[1].ID)

	n, err := s.store.CountAwaitingReview(ctx)
	s.Require().NoError(err)
	s.Equal(2, n)

	older.IsVerified = true
	older.VerificationStatus = models.StatusApprovedByAdmin
	older.UpdatedAt = base.Add(time.Minute)
	s.Require().NoError(s.store.Update(ctx, older))

	n, err = s.store.CountAwaitingReview(ctx)
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *PostgresStoreIntegrationSuite) TestCreateWithAttemptIsAtomic() {
	ctx := context.Background()
	d := newDoctor("atomic@example.com", true, time.Now().UTC())
	attempt := &models.Attempt{
		ID: id.NewAttemptID(), DoctorID: d.ID, LicenseNumber: d.LicenseNumber,
		Score: 95, Summary: "registered and authentic", Band: verification.BandVerified,
		Accepted: true, CreatedAt: time.Now().UTC(),
	}
	s.Require().NoError(s.store.CreateWithAttempt(ctx, d, attempt))

	dup := newDoctor("atomic@example.com", true, time.Now().UTC())
	err := s.store.CreateWithAttempt(ctx, dup, &models.Attempt{
		ID: id.NewAttemptID(), DoctorID: dup.ID, LicenseNumber: dup.LicenseNumber,
		Band: verification.BandVerified, CreatedAt: time.Now().UTC(),
	})
	s.ErrorIs(err, sentinel.ErrConflict)

	attempts, err := s.store.ListAttempts(ctx, d.ID)
	s.Require().NoError(err)
	s.Len(attempts, 1)
	orphans, err := s.store.ListAttempts(ctx, dup.ID)
	s.Require().NoError(err)
	s.Empty(orphans)
}

func (s *PostgresStoreIntegrationSuite) TestAttemptsNewestFirst() {
	ctx := context.Background()
	d := newDoctor("attempts@example.com", true, time.Now())
	s.Require().NoError(s.store.Create(ctx, d))

	base := time.Now().UTC()
	first := &models.Attempt{
		ID: id.NewAttemptID(), DoctorID: d.ID, LicenseNumber: d.LicenseNumber,
		Score: 95, Summary: "registered and authentic", Band: verification.BandVerified,
		Accepted: true, CreatedAt: base.Add(-time.Minute),
	}
	second := &models.Attempt{
		ID: id.NewAttemptID(), DoctorID: d.ID, LicenseNumber: d.LicenseNumber,
		Score: 55, Summary: "document unreadable", Band: verification.BandSuspect,
		CreatedAt: base,
	}
	s.Require().NoError(s.store.SaveAttempt(ctx, first))
	s.Require().NoError(s.store.SaveAttempt(ctx, second))

	attempts, err := s.store.ListAttempts(ctx, d.ID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 2)
	s.Equal(second.ID, attempts[0].ID)
	s.Equal(verification.BandSuspect, attempts[0].Band)
	s.False(attempts[0].Accepted)
}
