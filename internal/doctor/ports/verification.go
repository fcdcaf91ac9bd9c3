package ports

import (
	"context"

	verification "healthsphere/contracts/verification"
)

// VerificationPort runs a license verification for the doctor module.
// It uses contract types so the doctor module never imports verification
// internals. Errors keep their domain codes and are never turned into a score.
type VerificationPort interface {
	Verify(ctx context.Context, req verification.Request) (*verification.Outcome, error)
}
