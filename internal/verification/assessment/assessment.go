// Package assessment checks a license document image against a registry lookup.
package assessment

import (
	"context"

	"healthsphere/internal/verification/models"
	id "healthsphere/pkg/domain"
	pstrings "healthsphere/pkg/platform/strings"
)

// Input is everything the assessor sees for one request.
type Input struct {
	Document     models.Document
	License      id.LicenseNumber
	Lookup       models.LookupResult
	Instructions string
}

// Assessor produces a document assessment. Any error means no assessment was
// produced; callers must not substitute a score.
type Assessor interface {
	Assess(ctx context.Context, in Input) (*models.Assessment, error)
}

// normalize clamps the score and keeps only known, de-duplicated flags.
func normalize(score int, summary string, authentic bool, flags []string) *models.Assessment {
	out := &models.Assessment{
		Score:     min(max(score, 0), 100),
		Summary:   summary,
		Authentic: authentic,
	}
	for _, f := range pstrings.DedupeAndTrimLower(flags) {
		if flag := models.Flag(f); flag.IsKnown() {
			out.Flags = append(out.Flags, flag)
		}
	}
	return out
}
