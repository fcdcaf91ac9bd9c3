// Package llm wraps the Gemini API behind a JSON-structured generation call.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"google.golang.org/genai"
)

// ErrEmptyResponse is returned when the model produced no text, for example
// when the prompt was blocked.
var ErrEmptyResponse = errors.New("model returned an empty response")

// Media is inline binary content passed to the model.
type Media struct {
	Data     []byte
	MIMEType string
}

// Message is one turn of a conversation. Role is "user" or "model".
type Message struct {
	Role    string
	Content string
}

// Request describes one structured generation.
type Request struct {
	// Operation labels metrics and logs, e.g. "verify_document".
	Operation   string
	System      string
	Prompt      string
	Media       []Media
	History     []Message
	Schema      *genai.Schema
	Temperature float32
}

// Generator produces JSON decoded into out.
type Generator interface {
	GenerateJSON(ctx context.Context, req Request, out any) error
}

// Config configures the Gemini client.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the API endpoint; used by tests.
	BaseURL string
	// Registerer receives the model latency histogram. Nil disables it.
	Registerer prometheus.Registerer
}

// Gemini is a Generator backed by the Gemini developer API.
type Gemini struct {
	client  *genai.Client
	model   string
	latency *prometheus.HistogramVec
}

// NewGemini builds a Gemini generator.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g := &Gemini{client: client, model: cfg.Model}
	if cfg.Registerer != nil {
		g.latency = promauto.With(cfg.Registerer).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "healthsphere_model_request_duration_seconds",
			Help:    "Latency of generative model calls by operation and outcome",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"operation", "outcome"})
	}
	return g, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string { return g.model }

// GenerateJSON sends the request and decodes the model's JSON reply into out.
func (g *Gemini) GenerateJSON(ctx context.Context, req Request, out any) error {
	start := time.Now()
	err := g.generate(ctx, req, out)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	if g.latency != nil {
		g.latency.WithLabelValues(req.Operation, outcome).Observe(time.Since(start).Seconds())
	}
	return err
}

func (g *Gemini) generate(ctx context.Context, req Request, out any) error {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, BuildContents(req), config)
	if err != nil {
		return fmt.Errorf("generate content: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return ErrEmptyResponse
	}
	if err := json.Unmarshal([]byte(StripFences(text)), out); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

// BuildContents turns history, prompt and media into the genai conversation.
func BuildContents(req Request) []*genai.Content {
	contents := make([]*genai.Content, 0, len(req.History)+1)
	for _, m := range req.History {
		role := genai.Role(genai.RoleUser)
		if m.Role == "model" {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	if req.Prompt == "" && len(req.Media) == 0 {
		return contents
	}
	parts := make([]*genai.Part, 0, len(req.Media)+1)
	if req.Prompt != "" {
		parts = append(parts, genai.NewPartFromText(req.Prompt))
	}
	for _, m := range req.Media {
		parts = append(parts, genai.NewPartFromBytes(m.Data, m.MIMEType))
	}
	return append(contents, genai.NewContentFromParts(parts, genai.RoleUser))
}

// StripFences removes a surrounding ```json fence some models emit despite a
// JSON response type.
func StripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
