package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"healthsphere/internal/verification/models"
	"healthsphere/pkg/platform/httputil"
	"healthsphere/pkg/platform/validation"
	"healthsphere/pkg/requestcontext"
)

// Service runs one verification.
type Service interface {
	RequestVerification(ctx context.Context, req models.Request) (*models.Outcome, error)
}

// Handler exposes the verification flow over HTTP.
type Handler struct {
	service   Service
	logger    *slog.Logger
	threshold int
}

// New creates a verification handler. threshold only drives the informational
// passed_threshold field.
func New(service Service, threshold int, logger *slog.Logger) *Handler {
	return &Handler{service: service, threshold: threshold, logger: logger}
}

// Register registers the verification routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/verifications", h.handleVerify)
	r.Post("/verifications/upload", h.handleVerifyUpload)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	model, err := req.ToModel()
	if err != nil {
		h.logger.WarnContext(ctx, "invalid document data uri",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.verify(ctx, w, model)
}

func (h *Handler) handleVerifyUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	file, err := httputil.DecodeMultipartFile(r, "document", validation.MaxDocumentSize)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid verification upload",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.verify(ctx, w, models.Request{
		Document:          models.Document{Data: file.Data, MIMEType: file.MIMEType},
		LicenseNumber:     strings.TrimSpace(r.FormValue("license_number")),
		AdminInstructions: strings.TrimSpace(r.FormValue("admin_instructions")),
	})
}

func (h *Handler) verify(ctx context.Context, w http.ResponseWriter, req models.Request) {
	outcome, err := h.service.RequestVerification(ctx, req)
	if err != nil {
		// The service already logged the failure with its kind.
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toOutcomeResponse(outcome, h.threshold))
}
