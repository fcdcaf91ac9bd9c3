// Package registry looks up medical license numbers in an external registry.
//
// A lookup either answers "registered, with this name", "not registered", or
// fails with a *LookupError. A failure is never reported as "not registered".
package registry

import (
	"context"
	"errors"
	"fmt"

	"healthsphere/internal/verification/models"
	id "healthsphere/pkg/domain"
)

// DefaultName is the registry label attached to lookup results.
const DefaultName = "PMDC"

// Registry answers whether a license number is registered.
type Registry interface {
	Lookup(ctx context.Context, license id.LicenseNumber) (*models.LookupResult, error)
}

// HealthChecker is implemented by registries with a reachable backend.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Category normalizes lookup failures across adapters.
type Category string

const (
	CategoryTimeout          Category = "timeout"
	CategoryOutage           Category = "outage"
	CategoryAuthentication   Category = "authentication"
	CategoryRateLimited      Category = "rate_limited"
	CategoryContractMismatch Category = "contract_mismatch"
	CategoryInternal         Category = "internal"
)

// LookupError is returned when the registry could not give an answer.
type LookupError struct {
	Category Category
	Registry string
	Message  string
	Err      error
}

func (e *LookupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registry %s [%s]: %s: %v", e.Registry, e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("registry %s [%s]: %s", e.Registry, e.Category, e.Message)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// NewLookupError builds a categorized lookup failure.
func NewLookupError(category Category, registry, message string, err error) *LookupError {
	return &LookupError{Category: category, Registry: registry, Message: message, Err: err}
}

// CategoryOf returns the category of a lookup failure, or CategoryInternal for
// any other error.
func CategoryOf(err error) Category {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Category
	}
	return CategoryInternal
}

// IsTransient reports whether the failure is likely to clear on its own.
func IsTransient(err error) bool {
	switch CategoryOf(err) {
	case CategoryTimeout, CategoryOutage, CategoryRateLimited:
		return true
	default:
		return false
	}
}
