package handler_test

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks Service

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"healthsphere/internal/flows/handler"
	"healthsphere/internal/flows/handler/mocks"
	"healthsphere/internal/flows/models"
	"healthsphere/pkg/datauri"
	dErrors "healthsphere/pkg/domain-errors"
)

type FlowsHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestFlowsHandlerSuite(t *testing.T) {
	suite.Run(t, new(FlowsHandlerSuite))
}

func (s *FlowsHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = chi.NewRouter()
	handler.New(s.service, slog.New(slog.DiscardHandler)).Register(s.router)
}

func (s *FlowsHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FlowsHandlerSuite) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *FlowsHandlerSuite) TestSkinAnalysis() {
	uri := datauri.Encode("image/jpeg", []byte{0xff, 0xd8})
	s.service.EXPECT().AnalyzeSkin(gomock.Any(), models.SkinAnalysisInput{
		Photo:       models.Media{Data: []byte{0xff, 0xd8}, MIMEType: "image/jpeg"},
		Description: "red rash",
	}).Return(&models.SkinAnalysis{Condition: "Contact dermatitis", Confidence: 0.7, Advice: "Avoid the irritant."}, nil)

	rec := s.post("/ai/skin-analysis", `{"photo_data_uri":"`+uri+`","description":" red rash "}`)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"condition":"Contact dermatitis","confidence":0.7,"advice":"Avoid the irritant."}`, rec.Body.String())
}

func (s *FlowsHandlerSuite) TestMedicineCheck() {
	s.service.EXPECT().CheckMedicine(gomock.Any(), gomock.Any()).
		Return(&models.MedicineCheck{Identification: models.MedicineIdentification{IsMedicine: true, Name: "Panadol", Confidence: 0.9, Description: "Paracetamol"}}, nil)

	rec := s.post("/ai/medicine-check", `{"photo_data_uri":"`+datauri.Encode("image/png", []byte("p"))+`"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"is_medicine":true`)
}

func (s *FlowsHandlerSuite) TestFirstAid() {
	s.service.EXPECT().FirstAid(gomock.Any(), "deep cut").
		Return(&models.FirstAid{Instructions: "Apply pressure."}, nil)

	rec := s.post("/ai/first-aid", `{"emergency_description":"deep cut"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"instructions":"Apply pressure."}`, rec.Body.String())

	rec = s.post("/ai/first-aid", `{"emergency_description":"  "}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *FlowsHandlerSuite) TestLabReportSummary() {
	s.service.EXPECT().SummarizeLabReport(gomock.Any(), models.Media{Data: []byte("%PDF"), MIMEType: "application/pdf"}).
		Return(&models.LabReportSummary{Summary: "All values are normal."}, nil)

	rec := s.post("/ai/lab-report-summary", `{"lab_report_data_uri":"`+datauri.Encode("application/pdf", []byte("%PDF"))+`"}`)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "All values are normal.")
}

func (s *FlowsHandlerSuite) TestChatRoutes() {
	history := []models.ChatMessage{{Role: "user", Content: "hello"}}
	s.service.EXPECT().PsychologistChat(gomock.Any(), history).Return(&models.ChatReply{Response: "Assalamu alaikum."}, nil)
	s.service.EXPECT().LoginAssistant(gomock.Any(), history).Return(&models.ChatReply{Response: "Hi, how can I help?"}, nil)

	body := `{"chat_history":[{"role":"user","content":"hello"}]}`
	rec := s.post("/ai/psychologist-chat", body)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"response":"Assalamu alaikum."}`, rec.Body.String())

	rec = s.post("/ai/login-assistant", body)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"response":"Hi, how can I help?"}`, rec.Body.String())
}

func (s *FlowsHandlerSuite) TestChatRequiresHistory() {
	rec := s.post("/ai/login-assistant", `{}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *FlowsHandlerSuite) TestBadDataURI() {
	rec := s.post("/ai/medicine-check", `{"photo_data_uri":"https://example.com/pill.png"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *FlowsHandlerSuite) TestModelErrorMapsToBadGateway() {
	s.service.EXPECT().FirstAid(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeUpstreamModel, "first_aid model call failed"))

	rec := s.post("/ai/first-aid", `{"emergency_description":"burn"}`)
	s.Equal(http.StatusBadGateway, rec.Code)
	s.Contains(rec.Body.String(), "upstream_model_error")
}
