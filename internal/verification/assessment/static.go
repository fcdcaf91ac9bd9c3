package assessment

import (
	"context"
	"strings"

	"healthsphere/internal/verification/models"
)

// MinReadableBytes is the smallest document the static assessor treats as legible.
const MinReadableBytes = 512

// Static is a deterministic assessor for local runs and end-to-end tests.
// Documents smaller than MinReadableBytes are flagged unreadable; everything
// else is judged authentic.
type Static struct{}

// NewStatic creates a static assessor.
func NewStatic() *Static { return &Static{} }

func (Static) Assess(ctx context.Context, in Input) (*models.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(in.Document.Data) < MinReadableBytes {
		return normalize(55, "Document is too small to read.", false, []string{string(models.FlagUnreadable)}), nil
	}
	if strings.Contains(strings.ToLower(in.Instructions), "simulate forgery") {
		return normalize(60, "Document shows signs of alteration.", false, []string{string(models.FlagForgery)}), nil
	}
	return normalize(95, "Document appears genuine and legible.", true, nil), nil
}
