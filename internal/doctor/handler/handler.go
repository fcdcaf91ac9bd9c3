package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/models"
	id "healthsphere/pkg/domain"
	dErrors "healthsphere/pkg/domain-errors"
	"healthsphere/pkg/platform/httputil"
	"healthsphere/pkg/platform/validation"
	"healthsphere/pkg/requestcontext"
)

// Service defines the doctor operations used by the handler.
type Service interface {
	Signup(ctx context.Context, in models.Signup) (*models.Result, error)
	Reverify(ctx context.Context, in models.Reverify) (*models.Result, error)
	Get(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error)
	ListAttempts(ctx context.Context, doctorID id.DoctorID) ([]*models.Attempt, error)
	RequestReview(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error)
	ListPendingReview(ctx context.Context, limit int) ([]models.PendingReview, error)
	Approve(ctx context.Context, doctorID id.DoctorID) (*models.Doctor, error)
	Reject(ctx context.Context, doctorID id.DoctorID, reason string) (*models.Doctor, error)
}

// Handler handles doctor profile and admin review endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new doctor Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the doctor routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/doctors/signup", h.handleSignup)
	r.Post("/doctors/signup/upload", h.handleSignupUpload)
	r.Get("/doctors/{id}", h.handleGet)
	r.Post("/doctors/{id}/reverify", h.handleReverify)
	r.Post("/doctors/{id}/review-request", h.handleRequestReview)
	r.Get("/doctors/{id}/verifications", h.handleListAttempts)
}

// RegisterAdmin registers the review routes. The caller wraps r with the admin
// token middleware.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Get("/admin/verifications", h.handleListPending)
	r.Post("/admin/verifications/{id}/approve", h.handleApprove)
	r.Post("/admin/verifications/{id}/reject", h.handleReject)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[SignupRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	in, err := req.ToModel()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.signup(ctx, w, in)
}

func (h *Handler) handleSignupUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	file, err := httputil.DecodeMultipartFile(r, "document", validation.MaxDocumentSize)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid signup upload",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	experience := 0
	if raw := strings.TrimSpace(r.FormValue("experience_years")); raw != "" {
		if experience, err = strconv.Atoi(raw); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "experience_years must be a number"))
			return
		}
	}
	req := &ProfileRequest{
		FullName:        r.FormValue("full_name"),
		Email:           r.FormValue("email"),
		Phone:           r.FormValue("phone"),
		Specialization:  r.FormValue("specialization"),
		LicenseNumber:   r.FormValue("license_number"),
		ExperienceYears: experience,
		ClinicName:      r.FormValue("clinic_name"),
	}
	if err := httputil.PrepareRequest(req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.signup(ctx, w, models.Signup{
		Profile:  req.profile(),
		Document: verification.Document{Data: file.Data, MIMEType: file.MIMEType},
	})
}

func (h *Handler) signup(ctx context.Context, w http.ResponseWriter, in models.Signup) {
	result, err := h.service.Signup(ctx, in)
	if err != nil {
		h.logger.WarnContext(ctx, "doctor signup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if !result.Accepted {
		writeRejection(w, result)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResultResponse(result))
}

func writeRejection(w http.ResponseWriter, result *models.Result) {
	code := dErrors.CodeVerificationRejected
	httputil.WriteJSON(w, httputil.DomainCodeToHTTPStatus(code), &RejectionResponse{
		Error:            httputil.DomainCodeToHTTPCode(code),
		ErrorDescription: "license verification score is below the acceptance threshold; please upload a clearer license document",
		Verification:     toOutcomeResponse(result.Outcome),
		Threshold:        result.Threshold,
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}
	doctor, err := h.service.Get(r.Context(), doctorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDoctorResponse(doctor))
}

func (h *Handler) handleReverify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReverifyRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	doc, err := decodeDocument(req.DocumentDataURI)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Reverify(ctx, models.Reverify{
		DoctorID:      doctorID,
		Document:      doc,
		LicenseNumber: req.LicenseNumber,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResultResponse(result))
}

func (h *Handler) handleRequestReview(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}
	doctor, err := h.service.RequestReview(r.Context(), doctorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, toDoctorResponse(doctor))
}

func (h *Handler) handleListAttempts(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}
	attempts, err := h.service.ListAttempts(r.Context(), doctorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"verifications": toAttemptResponses(attempts)})
}

func (h *Handler) handleListPending(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "limit must be a positive number"))
			return
		}
		limit = n
	}
	items, err := h.service.ListPendingReview(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"pending": toPendingResponses(items)})
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}
	doctor, err := h.service.Approve(r.Context(), doctorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDoctorResponse(doctor))
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	doctorID, ok := parseDoctorID(w, r)
	if !ok {
		return
	}
	req := &RejectRequest{}
	if r.ContentLength != 0 {
		if req, ok = httputil.DecodeAndPrepare[RejectRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx)); !ok {
			return
		}
	}
	doctor, err := h.service.Reject(ctx, doctorID, req.Reason)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toDoctorResponse(doctor))
}

func parseDoctorID(w http.ResponseWriter, r *http.Request) (id.DoctorID, bool) {
	doctorID, err := id.ParseDoctorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.DoctorID{}, false
	}
	return doctorID, true
}
