package assessment

import (
	"context"
	"fmt"

	"healthsphere/internal/platform/llm"
	"healthsphere/internal/verification/models"
)

// modelReply mirrors responseSchema.
type modelReply struct {
	Score     *int     `json:"score"`
	Summary   string   `json:"summary"`
	Authentic bool     `json:"authentic"`
	Flags     []string `json:"flags"`
}

// Model asks a generative model to assess the document.
type Model struct {
	gen llm.Generator
}

// NewModel creates a model-backed assessor.
func NewModel(gen llm.Generator) *Model {
	return &Model{gen: gen}
}

// Assess sends the document and lookup context to the model.
// A reply without a score is returned with score 0 so the policy applies the band floor.
func (m *Model) Assess(ctx context.Context, in Input) (*models.Assessment, error) {
	var reply modelReply
	err := m.gen.GenerateJSON(ctx, llm.Request{
		Operation: "verify_document",
		System:    systemPrompt,
		Prompt:    BuildPrompt(in),
		Media:     []llm.Media{{Data: in.Document.Data, MIMEType: in.Document.MIMEType}},
		Schema:    responseSchema,
	}, &reply)
	if err != nil {
		return nil, fmt.Errorf("assess document: %w", err)
	}

	score := 0
	if reply.Score != nil {
		score = *reply.Score
	}
	return normalize(score, reply.Summary, reply.Authentic, reply.Flags), nil
}
