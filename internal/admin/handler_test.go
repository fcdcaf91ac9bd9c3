package admin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	id "healthsphere/pkg/domain"
	"healthsphere/pkg/platform/audit"
	auditmemory "healthsphere/pkg/platform/audit/store/memory"
)

type pendingFunc func(context.Context) (int, error)

func (f pendingFunc) CountPendingReview(ctx context.Context) (int, error) { return f(ctx) }

type failingReader struct{}

func (failingReader) ListByDoctor(context.Context, string) ([]audit.Event, error) {
	return nil, errors.New("db down")
}

func (failingReader) ListRecent(context.Context, int) ([]audit.Event, error) {
	return nil, errors.New("db down")
}

type AdminHandlerSuite struct {
	suite.Suite
	store  *auditmemory.InMemoryStore
	router chi.Router
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerSuite))
}

func (s *AdminHandlerSuite) SetupTest() {
	s.store = auditmemory.NewInMemoryStore()
	s.router = s.newRouter(s.store, pendingFunc(func(context.Context) (int, error) { return 4, nil }))
}

func (s *AdminHandlerSuite) newRouter(reader AuditReader, pending PendingCounter) chi.Router {
	r := chi.NewRouter()
	New(NewService(reader, pending), slog.New(slog.DiscardHandler)).Register(r)
	return r
}

func (s *AdminHandlerSuite) append(action audit.AuditEvent, doctorID string) {
	s.Require().NoError(s.store.Append(context.Background(), audit.Event{Action: string(action), DoctorID: doctorID}))
}

func (s *AdminHandlerSuite) get(r chi.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (s *AdminHandlerSuite) TestStats() {
	s.append(audit.EventVerificationCompleted, "")
	s.append(audit.EventVerificationCompleted, "")
	s.append(audit.EventVerificationFailed, "")
	s.append(audit.EventDoctorVerified, "d1")
	s.append(audit.EventAdminAuthFailed, "")

	rec := s.get(s.router, "/admin/stats")
	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, `"window_events":5`)
	s.Contains(body, `"verifications_completed":2`)
	s.Contains(body, `"verifications_failed":1`)
	s.Contains(body, `"doctors_verified":1`)
	s.Contains(body, `"admin_auth_failures":1`)
	s.Contains(body, `"pending_review":4`)
}

func (s *AdminHandlerSuite) TestStatsSurvivesPendingCountFailure() {
	r := s.newRouter(s.store, pendingFunc(func(context.Context) (int, error) { return 0, errors.New("down") }))
	rec := s.get(r, "/admin/stats")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"pending_review":0`)
}

func (s *AdminHandlerSuite) TestRecentAuditEvents() {
	for range 3 {
		s.append(audit.EventDoctorVerified, "d1")
	}

	rec := s.get(s.router, "/admin/audit/recent?limit=2")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"total":2`)

	rec = s.get(s.router, "/admin/audit/recent?limit=nope")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"total":3`)
}

func (s *AdminHandlerSuite) TestDoctorAuditTrail() {
	doctorID := id.NewDoctorID().String()
	s.append(audit.EventDoctorVerified, doctorID)
	s.append(audit.EventAdminRejected, doctorID)
	s.append(audit.EventDoctorVerified, id.NewDoctorID().String())

	rec := s.get(s.router, "/admin/audit/doctors/"+doctorID)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"total":2`)
	s.Contains(rec.Body.String(), "admin_rejected")

	rec = s.get(s.router, "/admin/audit/doctors/"+id.NewDoctorID().String())
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"events":[],"total":0}`, rec.Body.String())

	rec = s.get(s.router, "/admin/audit/doctors/not-a-uuid")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *AdminHandlerSuite) TestStoreFailureIsInternal() {
	r := s.newRouter(failingReader{}, nil)
	s.Equal(http.StatusInternalServerError, s.get(r, "/admin/stats").Code)
	s.Equal(http.StatusInternalServerError, s.get(r, "/admin/audit/recent").Code)
	s.Equal(http.StatusInternalServerError, s.get(r, "/admin/audit/doctors/"+id.NewDoctorID().String()).Code)
}
