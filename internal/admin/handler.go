package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	id "healthsphere/pkg/domain"
	"healthsphere/pkg/platform/audit"
	"healthsphere/pkg/platform/httputil"
	"healthsphere/pkg/requestcontext"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// Handler serves admin monitoring endpoints. Mount it behind the admin token guard.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

func New(service *Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register registers admin routes with the router
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/stats", h.HandleGetStats)
	r.Get("/admin/audit/recent", h.HandleGetRecentAuditEvents)
	r.Get("/admin/audit/doctors/{id}", h.HandleGetDoctorAuditTrail)
}

type AuditEventsResponse struct {
	Events []audit.Event `json:"events"`
	Total  int           `json:"total"`
}

func (h *Handler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stats, err := h.service.GetStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get stats",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) HandleGetRecentAuditEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	// Invalid or out of range limits fall back to the default.
	limit := defaultAuditLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = min(parsed, maxAuditLimit)
		}
	}

	events, err := h.service.GetRecentAuditEvents(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get recent audit events",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "admin audit events retrieved",
		"request_id", requestID,
		"count", len(events),
	)
	httputil.WriteJSON(w, http.StatusOK, toAuditEventsResponse(events))
}

func (h *Handler) HandleGetDoctorAuditTrail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doctorID, err := id.ParseDoctorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	events, err := h.service.GetDoctorAuditTrail(ctx, doctorID.String())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get doctor audit trail",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toAuditEventsResponse(events))
}

func toAuditEventsResponse(events []audit.Event) *AuditEventsResponse {
	if events == nil {
		events = []audit.Event{}
	}
	return &AuditEventsResponse{Events: events, Total: len(events)}
}
