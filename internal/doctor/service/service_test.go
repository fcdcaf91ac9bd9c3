package service_test

//go:generate mockgen -source=service.go -destination=mocks/store_mock.go -package=mocks Store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/metrics"
	"healthsphere/internal/doctor/models"
	portmocks "healthsphere/internal/doctor/ports/mocks"
	"healthsphere/internal/doctor/service"
	storemocks "healthsphere/internal/doctor/service/mocks"
	"healthsphere/internal/doctor/store"
	"healthsphere/internal/sentinel"
	id "healthsphere/pkg/domain"
	dErrors "healthsphere/pkg/domain-errors"
	"healthsphere/pkg/platform/audit"
	auditmemory "healthsphere/pkg/platform/audit/store/memory"
	"healthsphere/pkg/requestcontext"
)

type DoctorServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	verifier *portmocks.MockVerificationPort
	store    *store.InMemoryStore
	audits   *auditmemory.InMemoryStore
	metrics  *metrics.Metrics
	svc      *service.Service
	ctx      context.Context
}

func TestDoctorServiceSuite(t *testing.T) {
	suite.Run(t, new(DoctorServiceSuite))
}

type emitterFunc func(ctx context.Context, e audit.Event) error

func (f emitterFunc) Emit(ctx context.Context, e audit.Event) error { return f(ctx, e) }

func (s *DoctorServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.verifier = portmocks.NewMockVerificationPort(s.ctrl)
	s.store = store.NewInMemory()
	s.audits = auditmemory.NewInMemoryStore()
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.svc = service.New(s.store, s.verifier,
		service.WithMetrics(s.metrics),
		service.WithAuditor(audit.NewLogger(nil, emitterFunc(s.audits.Append))),
	)
	s.ctx = context.Background()
}

func (s *DoctorServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func signup(email string) models.Signup {
	return models.Signup{
		Profile: models.Profile{
			FullName:        "Ayesha Khan",
			Email:           email,
			Specialization:  "Cardiology",
			LicenseNumber:   "PMC-12345",
			ExperienceYears: 8,
		},
		Document: verification.Document{Data: []byte("img"), MIMEType: "image/png"},
	}
}

func outcome(score int) *verification.Outcome {
	band := verification.BandVerified
	switch {
	case score < 50:
		band = verification.BandUnregistered
	case score <= 70:
		band = verification.BandSuspect
	}
	return &verification.Outcome{Score: score, Summary: "summary", Band: band, Registered: score >= 50, RegistryName: "PMDC"}
}

func (s *DoctorServiceSuite) lastAudit() audit.Event {
	events, err := s.audits.ListRecent(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	return events[0]
}

func (s *DoctorServiceSuite) TestSignupAcceptedAtThreshold() {
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req verification.Request) (*verification.Outcome, error) {
			s.Equal("PMC-12345", req.LicenseNumber)
			s.Equal("Verify the medical license for Dr. Ayesha Khan, specializing in Cardiology. License number provided: PMC-12345.", req.AdminInstructions)
			return outcome(75), nil
		})

	res, err := s.svc.Signup(s.ctx, signup("Ayesha@Example.com"))
	s.Require().NoError(err)
	s.True(res.Accepted)
	s.Require().NotNil(res.Doctor)
	s.True(res.Doctor.IsVerified)
	s.Equal(models.StatusVerifiedByAI, res.Doctor.VerificationStatus)
	s.Equal("ayesha@example.com", res.Doctor.Email)

	attempts, err := s.svc.ListAttempts(s.ctx, res.Doctor.ID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 1)
	s.True(attempts[0].Accepted)
	s.Equal(75, attempts[0].Score)

	s.Equal(string(audit.EventDoctorVerified), s.lastAudit().Action)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Signups.WithLabelValues("accepted")))
}

func (s *DoctorServiceSuite) TestSignupRejectedBelowThreshold() {
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(74), nil)

	res, err := s.svc.Signup(s.ctx, signup("ayesha@example.com"))
	s.Require().NoError(err)
	s.False(res.Accepted)
	s.Nil(res.Doctor)
	s.Equal(74, res.Outcome.Score)
	s.Equal(75, res.Threshold)

	_, err = s.store.FindByEmail(s.ctx, "ayesha@example.com")
	s.Error(err, "rejected signups store nothing")
	s.Equal(string(audit.EventSignupRejected), s.lastAudit().Action)
}

func (s *DoctorServiceSuite) TestSignupPropagatesVerificationErrors() {
	lookupErr := dErrors.New(dErrors.CodeLookupUnavailable, "license registry is unavailable")
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(nil, lookupErr)

	res, err := s.svc.Signup(s.ctx, signup("ayesha@example.com"))
	s.Nil(res)
	s.Same(lookupErr, err)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Signups.WithLabelValues("error")))
}

func (s *DoctorServiceSuite) TestSignupDuplicateEmailSkipsVerification() {
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(95), nil).Times(1)
	_, err := s.svc.Signup(s.ctx, signup("ayesha@example.com"))
	s.Require().NoError(err)

	_, err = s.svc.Signup(s.ctx, signup("AYESHA@example.com"))
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *DoctorServiceSuite) TestSignupValidatesProfile() {
	in := signup("not-an-email")
	_, err := s.svc.Signup(s.ctx, in)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	in = signup("a@example.com")
	in.LicenseNumber = "  "
	_, err = s.svc.Signup(s.ctx, in)
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *DoctorServiceSuite) TestCustomThreshold() {
	svc := service.New(s.store, s.verifier, service.WithThreshold(90))
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(85), nil)

	res, err := svc.Signup(s.ctx, signup("ayesha@example.com"))
	s.Require().NoError(err)
	s.False(res.Accepted)
	s.Equal(90, svc.Threshold())
}

func (s *DoctorServiceSuite) createVerified() *models.Doctor {
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(95), nil)
	res, err := s.svc.Signup(s.ctx, signup("ayesha@example.com"))
	s.Require().NoError(err)
	return res.Doctor
}

func (s *DoctorServiceSuite) TestReverifyFailureKeepsVerifiedProfile() {
	doctor := s.createVerified()
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req verification.Request) (*verification.Outcome, error) {
			s.Equal("FAKE-000", req.LicenseNumber)
			return outcome(30), nil
		})

	res, err := s.svc.Reverify(s.ctx, models.Reverify{
		DoctorID:      doctor.ID,
		Document:      verification.Document{Data: []byte("x"), MIMEType: "image/png"},
		LicenseNumber: "FAKE-000",
	})
	s.Require().NoError(err)
	s.False(res.Accepted)

	stored, err := s.store.Get(s.ctx, doctor.ID)
	s.Require().NoError(err)
	s.True(stored.IsVerified)
	s.Equal(models.StatusVerifiedByAI, stored.VerificationStatus)
	s.Equal(id.LicenseNumber("PMC-12345"), stored.LicenseNumber)
	s.Equal(stored.VerificationStatus, res.Doctor.VerificationStatus)

	attempts, err := s.svc.ListAttempts(s.ctx, doctor.ID)
	s.Require().NoError(err)
	s.Require().Len(attempts, 2)
	s.False(attempts[0].Accepted)
	s.Equal(id.LicenseNumber("FAKE-000"), attempts[0].LicenseNumber)
	s.Equal(string(audit.EventDoctorRejected), s.lastAudit().Action)
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.Reverifications.WithLabelValues("rejected")))
}

func (s *DoctorServiceSuite) TestReverifyFailureMarksUnverifiedProfile() {
	doctor := s.createVerified()
	_, err := s.svc.Reject(s.ctx, doctor.ID, "expired license")
	s.Require().NoError(err)

	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(60), nil)
	res, err := s.svc.Reverify(s.ctx, models.Reverify{DoctorID: doctor.ID, LicenseNumber: "PMC-54321"})
	s.Require().NoError(err)
	s.False(res.Accepted)
	s.False(res.Doctor.IsVerified)
	s.Equal(models.StatusVerificationFailed, res.Doctor.VerificationStatus)
	s.Equal(id.LicenseNumber("PMC-12345"), res.Doctor.LicenseNumber)
}

func (s *DoctorServiceSuite) TestReverifyWithNewLicense() {
	doctor := s.createVerified()
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req verification.Request) (*verification.Outcome, error) {
			s.Equal("D-98765", req.LicenseNumber)
			return outcome(92), nil
		})

	res, err := s.svc.Reverify(s.ctx, models.Reverify{DoctorID: doctor.ID, LicenseNumber: " D-98765 "})
	s.Require().NoError(err)
	s.True(res.Doctor.IsVerified)
	s.Equal(id.LicenseNumber("D-98765"), res.Doctor.LicenseNumber)
}

func (s *DoctorServiceSuite) TestReverifyUnknownDoctor() {
	_, err := s.svc.Reverify(s.ctx, models.Reverify{DoctorID: id.NewDoctorID()})
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *DoctorServiceSuite) TestAdminReviewFlow() {
	doctor := s.createVerified()
	ctx := requestcontext.WithAdminActorID(s.ctx, "admin-7")
	_, err := s.svc.Reject(ctx, doctor.ID, "license photo does not match")
	s.Require().NoError(err)

	pending, err := s.svc.ListPendingReview(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(pending, "rejected profiles are not awaiting review")

	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(55), nil)
	_, err = s.svc.Reverify(s.ctx, models.Reverify{DoctorID: doctor.ID})
	s.Require().NoError(err)

	reviewed, err := s.svc.RequestReview(s.ctx, doctor.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPendingReview, reviewed.VerificationStatus)

	pending, err = s.svc.ListPendingReview(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(pending, 1)
	s.Require().NotNil(pending[0].LatestAttempt)
	s.Equal(55, pending[0].LatestAttempt.Score)

	approved, err := s.svc.Approve(ctx, doctor.ID)
	s.Require().NoError(err)
	s.True(approved.IsVerified)
	s.Equal(models.StatusApprovedByAdmin, approved.VerificationStatus)
	last := s.lastAudit()
	s.Equal(string(audit.EventAdminApproved), last.Action)
	s.Equal("admin-7", last.ActorID)

	rejected, err := s.svc.Reject(ctx, doctor.ID, "seal does not match PMDC template")
	s.Require().NoError(err)
	s.False(rejected.IsVerified)
	s.Equal(models.StatusRejectedByAdmin, rejected.VerificationStatus)
	s.Equal("seal does not match PMDC template", s.lastAudit().Reason)

	pending, err = s.svc.ListPendingReview(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(pending)
	n, err := s.svc.CountPendingReview(s.ctx)
	s.Require().NoError(err)
	s.Zero(n)
}

func (s *DoctorServiceSuite) TestRequestReviewOnVerifiedDoctor() {
	doctor := s.createVerified()
	_, err := s.svc.RequestReview(s.ctx, doctor.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *DoctorServiceSuite) TestStoreFailureOnCreate() {
	mockStore := storemocks.NewMockStore(s.ctrl)
	svc := service.New(mockStore, s.verifier, service.WithClock(func() time.Time {
		return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	}))

	mockStore.EXPECT().FindByEmail(gomock.Any(), "ayesha@example.com").Return(nil, errNotFound())
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(95), nil)
	mockStore.EXPECT().CreateWithAttempt(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d *models.Doctor, a *models.Attempt) error {
			s.Equal(d.ID, a.DoctorID)
			s.True(a.Accepted)
			return errors.New("connection reset")
		})

	_, err := svc.Signup(s.ctx, signup("ayesha@example.com"))
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *DoctorServiceSuite) TestConcurrentSignupsSameEmail() {
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(95), nil).Times(1)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.svc.Signup(s.ctx, signup("ayesha@example.com"))
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case dErrors.HasCode(err, dErrors.CodeConflict):
			conflicts++
		}
	}
	s.Equal(1, ok)
	s.Equal(4, conflicts)
}

func errNotFound() error {
	return sentinel.ErrNotFound
}

func (s *DoctorServiceSuite) TestAdminViewIsAudited() {
	s.verifier.EXPECT().Verify(gomock.Any(), gomock.Any()).Return(outcome(90), nil)
	result, err := s.svc.Signup(s.ctx, signup("ayesha@example.com"))
	s.Require().NoError(err)

	ctx := requestcontext.WithAdminActorID(s.ctx, "admin-3")
	_, err = s.svc.Get(ctx, result.Doctor.ID)
	s.Require().NoError(err)

	last := s.lastAudit()
	s.Equal(string(audit.EventDoctorViewed), last.Action)
	s.Equal("admin-3", last.ActorID)
}
