//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	audit "healthsphere/pkg/platform/audit"
	"healthsphere/pkg/testutil/containers"
)

type StoreIntegrationSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *Store
}

func TestStoreIntegrationSuite(t *testing.T) {
	suite.Run(t, new(StoreIntegrationSuite))
}

func (s *StoreIntegrationSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = New(s.postgres.DB)
}

func (s *StoreIntegrationSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_events"))
}

func (s *StoreIntegrationSuite) TestTrailIsNewestFirst() {
	ctx := context.Background()
	doctorID := uuid.NewString()
	score := 92
	base := time.Now().UTC().Truncate(time.Microsecond)

	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: base.Add(-time.Minute),
		Category:  audit.CategoryCompliance,
		Action:    string(audit.EventDoctorVerified),
		DoctorID:  doctorID,
		Score:     &score,
	}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: base,
		Category:  audit.CategoryOperations,
		Action:    string(audit.EventDoctorViewed),
		DoctorID:  doctorID,
		ActorID:   "reviewer-1",
	}))
	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp: base,
		Category:  audit.CategoryOperations,
		Action:    string(audit.EventDoctorViewed),
		DoctorID:  uuid.NewString(),
	}))

	trail, err := s.store.ListByDoctor(ctx, doctorID)
	s.Require().NoError(err)
	s.Require().Len(trail, 2)
	s.Equal(string(audit.EventDoctorViewed), trail[0].Action)
	s.Equal("reviewer-1", trail[0].ActorID)
	s.Require().NotNil(trail[1].Score)
	s.Equal(92, *trail[1].Score)

	recent, err := s.store.ListRecent(ctx, 2)
	s.Require().NoError(err)
	s.Len(recent, 2)
}

func (s *StoreIntegrationSuite) TestAppendWithIDIsIdempotent() {
	ctx := context.Background()
	eventID := uuid.New()
	event := audit.Event{
		Timestamp: time.Now().UTC(),
		Category:  audit.CategoryCompliance,
		Action:    string(audit.EventVerificationCompleted),
	}

	s.Require().NoError(s.store.AppendWithID(ctx, eventID, event))
	s.Require().NoError(s.store.AppendWithID(ctx, eventID, event))

	recent, err := s.store.ListRecent(ctx, 10)
	s.Require().NoError(err)
	s.Len(recent, 1)
}
