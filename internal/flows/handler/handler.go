package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"healthsphere/internal/flows/models"
	"healthsphere/pkg/platform/httputil"
	"healthsphere/pkg/requestcontext"
)

// Service runs the assistant flows.
type Service interface {
	AnalyzeSkin(ctx context.Context, in models.SkinAnalysisInput) (*models.SkinAnalysis, error)
	CheckMedicine(ctx context.Context, photo models.Media) (*models.MedicineCheck, error)
	FirstAid(ctx context.Context, emergency string) (*models.FirstAid, error)
	SummarizeLabReport(ctx context.Context, report models.Media) (*models.LabReportSummary, error)
	PsychologistChat(ctx context.Context, history []models.ChatMessage) (*models.ChatReply, error)
	LoginAssistant(ctx context.Context, history []models.ChatMessage) (*models.ChatReply, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the assistant routes under /ai.
func (h *Handler) Register(r chi.Router) {
	r.Route("/ai", func(r chi.Router) {
		r.Post("/skin-analysis", h.handleSkinAnalysis)
		r.Post("/medicine-check", h.handleMedicineCheck)
		r.Post("/first-aid", h.handleFirstAid)
		r.Post("/lab-report-summary", h.handleLabReportSummary)
		r.Post("/psychologist-chat", h.handlePsychologistChat)
		r.Post("/login-assistant", h.handleLoginAssistant)
	})
}

func (h *Handler) handleSkinAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[SkinAnalysisRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	photo, err := decodeMedia(req.PhotoDataURI)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	respond(w, func() (any, error) {
		return h.service.AnalyzeSkin(ctx, models.SkinAnalysisInput{Photo: photo, Description: req.Description})
	})
}

func (h *Handler) handleMedicineCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[MedicineCheckRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	photo, err := decodeMedia(req.PhotoDataURI)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	respond(w, func() (any, error) { return h.service.CheckMedicine(ctx, photo) })
}

func (h *Handler) handleFirstAid(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[FirstAidRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	respond(w, func() (any, error) { return h.service.FirstAid(ctx, req.EmergencyDescription) })
}

func (h *Handler) handleLabReportSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[LabReportRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	report, err := decodeMedia(req.LabReportDataURI)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	respond(w, func() (any, error) { return h.service.SummarizeLabReport(ctx, report) })
}

func (h *Handler) handlePsychologistChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ChatRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	respond(w, func() (any, error) { return h.service.PsychologistChat(ctx, req.ChatHistory) })
}

func (h *Handler) handleLoginAssistant(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[ChatRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	respond(w, func() (any, error) { return h.service.LoginAssistant(ctx, req.ChatHistory) })
}

// respond writes the flow reply, or the mapped error. The service logs failures.
func respond(w http.ResponseWriter, call func() (any, error)) {
	out, err := call()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}
