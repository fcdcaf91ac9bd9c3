package adapters

import (
	"context"

	verification "healthsphere/contracts/verification"
	"healthsphere/internal/doctor/ports"
	"healthsphere/internal/verification/models"
)

// VerificationRunner is the in-process verification service.
type VerificationRunner interface {
	RequestVerification(ctx context.Context, req models.Request) (*models.Outcome, error)
}

// VerificationAdapter maps between the verification service and contract types.
type VerificationAdapter struct {
	runner VerificationRunner
}

// NewVerificationAdapter wraps the in-process verification service.
func NewVerificationAdapter(runner VerificationRunner) *VerificationAdapter {
	return &VerificationAdapter{runner: runner}
}

func (a *VerificationAdapter) Verify(ctx context.Context, req verification.Request) (*verification.Outcome, error) {
	outcome, err := a.runner.RequestVerification(ctx, models.Request{
		Document:          models.Document{Data: req.Document.Data, MIMEType: req.Document.MIMEType},
		LicenseNumber:     req.LicenseNumber,
		AdminInstructions: req.AdminInstructions,
	})
	if err != nil {
		return nil, err
	}
	return &verification.Outcome{
		Score:        outcome.Score,
		Summary:      outcome.Summary,
		Band:         verification.Band(outcome.Band),
		Registered:   outcome.Registry.Registered,
		MatchedName:  outcome.Registry.MatchedName,
		RegistryName: outcome.Registry.Registry,
	}, nil
}

var _ ports.VerificationPort = (*VerificationAdapter)(nil)
