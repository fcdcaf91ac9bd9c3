package registry

import (
	"context"
	"maps"
	"time"

	"healthsphere/internal/verification/models"
	id "healthsphere/pkg/domain"
)

// MockDoctorName is the name every built-in allow-list entry resolves to.
const MockDoctorName = "Dr. Mock User"

// DefaultAllowlist returns the built-in registered licenses.
func DefaultAllowlist() map[string]string {
	return map[string]string{
		"PMC-12345": MockDoctorName,
		"PMC-54321": MockDoctorName,
		"D-98765":   MockDoctorName,
	}
}

// Allowlist is an in-memory registry for local runs and tests.
// Matching is exact on the trimmed license number.
type Allowlist struct {
	name    string
	entries map[string]string
	now     func() time.Time
}

// NewAllowlist returns the built-in entries merged with extra.
func NewAllowlist(extra map[string]string) *Allowlist {
	entries := DefaultAllowlist()
	maps.Copy(entries, extra)
	return &Allowlist{name: DefaultName, entries: entries, now: time.Now}
}

// Lookup never fails.
func (a *Allowlist) Lookup(_ context.Context, license id.LicenseNumber) (*models.LookupResult, error) {
	result := &models.LookupResult{
		LicenseNumber: license,
		Registry:      a.name,
		CheckedAt:     a.now().UTC(),
	}
	if name, ok := a.entries[license.String()]; ok {
		result.Registered = true
		result.MatchedName = name
	}
	return result, nil
}

// Health always succeeds.
func (a *Allowlist) Health(context.Context) error { return nil }
