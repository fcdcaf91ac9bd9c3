// Package service is the single entry point for a license verification:
// validate, look the license up once, assess the document once, then band the
// score.
package service

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"healthsphere/internal/verification/assessment"
	"healthsphere/internal/verification/metrics"
	"healthsphere/internal/verification/models"
	"healthsphere/internal/verification/policy"
	"healthsphere/internal/verification/registry"
	"healthsphere/internal/platform/tracer"
	id "healthsphere/pkg/domain"
	dErrors "healthsphere/pkg/domain-errors"
	"healthsphere/pkg/platform/audit"
	"healthsphere/pkg/platform/privacy"
	"healthsphere/pkg/platform/validation"
)

// DefaultTimeout bounds a whole verification when none is configured.
const DefaultTimeout = 60 * time.Second

// Failure kinds used as metric labels and audit reasons.
const (
	failureValidation = "validation"
	failureLookup     = "lookup"
	failureAssessment = "assessment"
)

// Service runs the verification flow. It never rejects a low score; callers
// apply their own acceptance threshold.
type Service struct {
	registry registry.Registry
	assessor assessment.Assessor
	auditor  *audit.Logger
	metrics  *metrics.Metrics
	tracer   tracer.Tracer
	logger   *slog.Logger
	timeout  time.Duration
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithTracer sets the span tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithAuditor records verification_completed and verification_failed events.
func WithAuditor(a *audit.Logger) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithTimeout bounds the whole verification. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// New creates a verification service.
// Panics if required dependencies are nil - fail fast at startup.
func New(reg registry.Registry, assessor assessment.Assessor, opts ...Option) *Service {
	if reg == nil {
		panic("service.New: registry is required")
	}
	if assessor == nil {
		panic("service.New: assessor is required")
	}
	s := &Service{
		registry: reg,
		assessor: assessor,
		tracer:   tracer.NewNoop(),
		logger:   slog.New(slog.DiscardHandler),
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestVerification validates req, then runs lookup, assessment and policy
// exactly once each. Errors carry CodeValidation, CodeLookupUnavailable or
// CodeAssessmentFailed and never come with a score.
func (s *Service) RequestVerification(ctx context.Context, req models.Request) (out *models.Outcome, err error) {
	start := time.Now()
	license, err := ValidateRequest(req)
	if err != nil {
		s.fail(ctx, failureValidation, "", err)
		return nil, err
	}
	req.Document.MIMEType = DocumentMIMEType(req.Document)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	ctx, span := s.tracer.Start(ctx, tracer.SpanVerification,
		tracer.String(tracer.AttrLicenseHash, privacy.HashIdentifier(license.String())),
		tracer.String(tracer.AttrMIMEType, req.Document.MIMEType),
		tracer.Int(tracer.AttrDocBytes, len(req.Document.Data)),
	)
	defer func() {
		span.End(err)
		s.metrics.ObserveStage(metrics.StageTotal, time.Since(start))
	}()

	lookup, err := s.lookup(ctx, license)
	if err != nil {
		s.fail(ctx, failureLookup, license, err)
		return nil, err
	}

	assessed, err := s.assess(ctx, req, license, *lookup)
	if err != nil {
		s.fail(ctx, failureAssessment, license, err)
		return nil, err
	}

	_, policySpan := s.tracer.Start(ctx, tracer.SpanPolicy)
	outcome := policy.Evaluate(*lookup, *assessed)
	policySpan.SetAttributes(
		tracer.Int(tracer.AttrScore, outcome.Score),
		tracer.String(tracer.AttrBand, string(outcome.Band)),
	)
	policySpan.End(nil)

	s.metrics.ObserveOutcome(string(outcome.Band), outcome.Score)
	score := outcome.Score
	s.auditor.Record(ctx, audit.EventVerificationCompleted, audit.Event{
		LicenseNumber: license.Redacted(),
		Decision:      string(outcome.Band),
		Score:         &score,
	})
	span.AddEvent(tracer.EventAuditEmitted)

	s.logger.InfoContext(ctx, "verification completed",
		"license", license.Redacted(),
		"registered", outcome.Registry.Registered,
		"band", outcome.Band,
		"score", outcome.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &outcome, nil
}

func (s *Service) lookup(ctx context.Context, license id.LicenseNumber) (result *models.LookupResult, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanLookup)
	defer func() {
		span.End(err)
		s.metrics.ObserveStage(metrics.StageLookup, time.Since(start))
	}()

	result, err = s.registry.Lookup(ctx, license)
	if err != nil {
		msg := "license registry is unavailable"
		if errors.Is(err, context.DeadlineExceeded) || registry.CategoryOf(err) == registry.CategoryTimeout {
			msg = "license registry lookup timed out"
		}
		return nil, dErrors.WithCode(err, dErrors.CodeLookupUnavailable, msg)
	}
	if result == nil {
		return nil, dErrors.New(dErrors.CodeLookupUnavailable, "license registry returned no result")
	}
	span.SetAttributes(
		tracer.String(tracer.AttrRegistry, result.Registry),
		tracer.Bool(tracer.AttrRegistered, result.Registered),
	)
	return result, nil
}

func (s *Service) assess(ctx context.Context, req models.Request, license id.LicenseNumber, lookup models.LookupResult) (result *models.Assessment, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, tracer.SpanAssessment)
	defer func() {
		span.End(err)
		s.metrics.ObserveStage(metrics.StageAssessment, time.Since(start))
	}()

	result, err = s.assessor.Assess(ctx, assessment.Input{
		Document:     req.Document,
		License:      license,
		Lookup:       lookup,
		Instructions: req.AdminInstructions,
	})
	if err != nil {
		msg := "document assessment failed"
		if errors.Is(err, context.DeadlineExceeded) {
			msg = "document assessment timed out"
		}
		return nil, dErrors.WithCode(err, dErrors.CodeAssessmentFailed, msg)
	}
	if result == nil {
		return nil, dErrors.New(dErrors.CodeAssessmentFailed, "document assessment returned no result")
	}
	span.SetAttributes(tracer.Int(tracer.AttrFlagCount, len(result.Flags)))
	return result, nil
}

func (s *Service) fail(ctx context.Context, kind string, license id.LicenseNumber, err error) {
	s.metrics.IncrementFailure(kind)
	s.auditor.Record(ctx, audit.EventVerificationFailed, audit.Event{
		LicenseNumber: redacted(license),
		Decision:      "error",
		Reason:        kind,
	})
	level := slog.LevelWarn
	if kind == failureValidation {
		level = slog.LevelInfo
	}
	s.logger.Log(ctx, level, "verification failed",
		"kind", kind,
		"license", redacted(license),
		"error", err,
	)
}

func redacted(l id.LicenseNumber) string {
	if l == "" {
		return ""
	}
	return l.Redacted()
}

// ValidateRequest checks every precondition that does not need a network call
// and returns the parsed license number.
func ValidateRequest(req models.Request) (id.LicenseNumber, error) {
	if len(req.Document.Data) == 0 {
		return "", dErrors.New(dErrors.CodeValidation, "document image is required")
	}
	if len(req.Document.Data) > validation.MaxDocumentSize {
		return "", dErrors.New(dErrors.CodeValidation, "document image exceeds maximum size")
	}
	if !SupportedMIMEType(DocumentMIMEType(req.Document)) {
		return "", dErrors.New(dErrors.CodeValidation, "document must be an image or PDF")
	}
	license, err := id.ParseLicenseNumber(req.LicenseNumber)
	if err != nil {
		return "", err
	}
	if err := validation.CheckStringLength("admin_instructions", req.AdminInstructions, validation.MaxInstructionsLength); err != nil {
		return "", err
	}
	return license, nil
}

// DocumentMIMEType returns the declared media type, sniffing the bytes when
// none was declared.
func DocumentMIMEType(doc models.Document) string {
	declared := strings.TrimSpace(doc.MIMEType)
	if declared == "" || declared == "application/octet-stream" {
		declared = http.DetectContentType(doc.Data)
	}
	mediaType, _, err := mime.ParseMediaType(declared)
	if err != nil {
		return ""
	}
	return mediaType
}

// SupportedMIMEType reports whether mediaType is an image or a PDF.
func SupportedMIMEType(mediaType string) bool {
	return strings.HasPrefix(mediaType, "image/") || mediaType == "application/pdf"
}
