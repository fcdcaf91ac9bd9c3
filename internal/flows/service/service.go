// Package service runs the assistant flows. Each flow validates its input and
// makes exactly one structured model call.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"healthsphere/internal/flows/metrics"
	"healthsphere/internal/flows/models"
	"healthsphere/internal/platform/llm"
	"healthsphere/internal/platform/tracer"
	dErrors "healthsphere/pkg/domain-errors"
	"healthsphere/pkg/platform/validation"
)

// DefaultTimeout bounds one model call when none is configured.
const DefaultTimeout = 60 * time.Second

type Service struct {
	gen     llm.Generator
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  tracer.Tracer
	timeout time.Duration
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func New(gen llm.Generator, opts ...Option) *Service {
	if gen == nil {
		panic("flows.New: generator is required")
	}
	s := &Service{
		gen:     gen,
		logger:  slog.New(slog.DiscardHandler),
		tracer:  tracer.NewNoop(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) AnalyzeSkin(ctx context.Context, in models.SkinAnalysisInput) (*models.SkinAnalysis, error) {
	var out models.SkinAnalysis
	err := s.run(ctx, FlowSkinAnalysis, func() error {
		if err := checkImage("photo", in.Photo); err != nil {
			return err
		}
		return validation.CheckStringLength("description", in.Description, validation.MaxDescriptionLength)
	}, llm.Request{
		System: skinAnalysisSystem,
		Prompt: "Description: " + describe(in.Description),
		Media:  []llm.Media{{Data: in.Photo.Data, MIMEType: in.Photo.MIMEType}},
		Schema: skinAnalysisSchema,
	}, &out, func() error {
		out.Confidence = clampUnit(out.Confidence)
		return requireText("condition", out.Condition)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) CheckMedicine(ctx context.Context, photo models.Media) (*models.MedicineCheck, error) {
	var out models.MedicineCheck
	err := s.run(ctx, FlowMedicineCheck, func() error {
		return checkImage("photo", photo)
	}, llm.Request{
		System: medicineCheckSystem,
		Prompt: "Identify the medicine in this photo.",
		Media:  []llm.Media{{Data: photo.Data, MIMEType: photo.MIMEType}},
		Schema: medicineCheckSchema,
	}, &out, func() error {
		out.Identification.Confidence = clampUnit(out.Identification.Confidence)
		return requireText("description", out.Identification.Description)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) FirstAid(ctx context.Context, emergency string) (*models.FirstAid, error) {
	var out models.FirstAid
	err := s.run(ctx, FlowFirstAid, func() error {
		return validation.CheckRequiredWithin("emergency_description", emergency, validation.MaxDescriptionLength)
	}, llm.Request{
		System: firstAidSystem,
		Prompt: "Emergency description: " + strings.TrimSpace(emergency),
		Schema: firstAidSchema,
	}, &out, func() error {
		return requireText("instructions", out.Instructions)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) SummarizeLabReport(ctx context.Context, report models.Media) (*models.LabReportSummary, error) {
	var out models.LabReportSummary
	err := s.run(ctx, FlowLabReportSummary, func() error {
		if err := checkMedia("lab_report", report); err != nil {
			return err
		}
		if !strings.HasPrefix(report.MIMEType, "image/") && report.MIMEType != "application/pdf" {
			return dErrors.New(dErrors.CodeValidation, "lab_report must be an image or PDF")
		}
		return nil
	}, llm.Request{
		System: labReportSystem,
		Prompt: "Summarize this lab report.",
		Media:  []llm.Media{{Data: report.Data, MIMEType: report.MIMEType}},
		Schema: labReportSchema,
	}, &out, func() error {
		return requireText("summary", out.Summary)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Service) PsychologistChat(ctx context.Context, history []models.ChatMessage) (*models.ChatReply, error) {
	return s.chat(ctx, FlowPsychologistChat, psychologistSystem, history)
}

func (s *Service) LoginAssistant(ctx context.Context, history []models.ChatMessage) (*models.ChatReply, error) {
	return s.chat(ctx, FlowLoginAssistant, loginAssistantSystem, history)
}

func (s *Service) chat(ctx context.Context, flow, system string, history []models.ChatMessage) (*models.ChatReply, error) {
	var out models.ChatReply
	err := s.run(ctx, flow, func() error {
		return ValidateChatHistory(history)
	}, llm.Request{
		System:      system,
		History:     toLLMHistory(history),
		Schema:      chatReplySchema,
		Temperature: 0.7,
	}, &out, func() error {
		return requireText("response", out.Response)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// run validates, calls the model once with the flow's timeout, then applies
// post to the decoded reply.
func (s *Service) run(ctx context.Context, flow string, validate func() error, req llm.Request, out any, post func() error) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanFlowPrefix+flow, tracer.String(tracer.AttrFlow, flow))
	defer func() { span.End(err) }()

	if err := validate(); err != nil {
		s.metrics.Observe(flow, metrics.OutcomeInvalidInput, 0)
		span.SetAttributes(tracer.String(tracer.AttrOutcome, metrics.OutcomeInvalidInput))
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	req.Operation = flow
	err = s.gen.GenerateJSON(ctx, req, out)
	if err == nil {
		err = post()
	}
	elapsed := time.Since(start)
	span.SetAttributes(tracer.Duration("flow.duration_ms", elapsed))
	if err != nil {
		s.metrics.Observe(flow, metrics.OutcomeUpstreamFailure, elapsed)
		span.SetAttributes(tracer.String(tracer.AttrOutcome, metrics.OutcomeUpstreamFailure))
		s.logger.ErrorContext(ctx, "assistant flow failed",
			"flow", flow,
			"error", err,
			"duration_ms", elapsed.Milliseconds(),
		)
		return dErrors.WithCode(err, dErrors.CodeUpstreamModel, flow+" model call failed")
	}

	s.metrics.Observe(flow, metrics.OutcomeOK, elapsed)
	span.SetAttributes(tracer.String(tracer.AttrOutcome, metrics.OutcomeOK))
	s.logger.InfoContext(ctx, "assistant flow completed",
		"flow", flow,
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}

// ValidateChatHistory requires a non-empty conversation of user and model
// turns that ends with the user speaking.
func ValidateChatHistory(history []models.ChatMessage) error {
	if len(history) == 0 {
		return dErrors.New(dErrors.CodeValidation, "chat_history is required")
	}
	if err := validation.CheckSliceCount("chat messages", len(history), validation.MaxChatMessages); err != nil {
		return err
	}
	for i, m := range history {
		if m.Role != models.RoleUser && m.Role != models.RoleModel {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("chat_history[%d].role must be user or model", i))
		}
		if err := validation.CheckRequiredWithin(fmt.Sprintf("chat_history[%d].content", i), m.Content, validation.MaxChatMessageLength); err != nil {
			return err
		}
	}
	if history[len(history)-1].Role != models.RoleUser {
		return dErrors.New(dErrors.CodeValidation, "chat_history must end with a user message")
	}
	return nil
}

func toLLMHistory(history []models.ChatMessage) []llm.Message {
	out := make([]llm.Message, len(history))
	for i, m := range history {
		out[i] = llm.Message{Role: m.Role, Content: strings.TrimSpace(m.Content)}
	}
	return out
}

func checkMedia(field string, m models.Media) error {
	if len(m.Data) == 0 {
		return dErrors.New(dErrors.CodeValidation, field+" is required")
	}
	if len(m.Data) > validation.MaxDocumentSize {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s exceeds max size of %d bytes", field, validation.MaxDocumentSize))
	}
	return nil
}

func checkImage(field string, m models.Media) error {
	if err := checkMedia(field, m); err != nil {
		return err
	}
	if !strings.HasPrefix(m.MIMEType, "image/") {
		return dErrors.New(dErrors.CodeValidation, field+" must be an image")
	}
	return nil
}

func describe(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "(none provided)"
	}
	return s
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("model returned an empty %s", field)
	}
	return nil
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
