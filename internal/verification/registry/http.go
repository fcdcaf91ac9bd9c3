package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"healthsphere/internal/verification/models"
	id "healthsphere/pkg/domain"
)

const maxResponseBytes = 64 << 10

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPConfig configures the networked registry client.
type HTTPConfig struct {
	Name       string
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient HTTPDoer
}

// HTTPRegistry queries a registry service over JSON/HTTP.
type HTTPRegistry struct {
	name    string
	baseURL string
	apiKey  string
	client  HTTPDoer
	now     func() time.Time
}

type lookupRequest struct {
	LicenseNumber string `json:"license_number"`
}

type lookupResponse struct {
	LicenseNumber string     `json:"license_number"`
	DoctorName    string     `json:"doctor_name"`
	Registered    *bool      `json:"registered"`
	CheckedAt     *time.Time `json:"checked_at"`
}

// NewHTTP creates a networked registry client.
func NewHTTP(cfg HTTPConfig) *HTTPRegistry {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Name == "" {
		cfg.Name = DefaultName
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPRegistry{
		name:    cfg.Name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  client,
		now:     time.Now,
	}
}

// Lookup posts the license number and maps the reply. A 404 means the license
// is not registered.
func (r *HTTPRegistry) Lookup(ctx context.Context, license id.LicenseNumber) (*models.LookupResult, error) {
	body, err := json.Marshal(lookupRequest{LicenseNumber: license.String()})
	if err != nil {
		return nil, NewLookupError(CategoryInternal, r.name, "failed to marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/licenses/lookup", bytes.NewReader(body))
	if err != nil {
		return nil, NewLookupError(CategoryInternal, r.name, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, r.transportError(ctx, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, r.transportError(ctx, err)
	}

	result := &models.LookupResult{
		LicenseNumber: license,
		Registry:      r.name,
		CheckedAt:     r.now().UTC(),
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return result, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, NewLookupError(CategoryAuthentication, r.name, fmt.Sprintf("authentication failed: %d", resp.StatusCode), nil)
	case http.StatusTooManyRequests:
		return nil, NewLookupError(CategoryRateLimited, r.name, "rate limit exceeded", nil)
	case http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusBadGateway:
		return nil, NewLookupError(CategoryOutage, r.name, fmt.Sprintf("registry unavailable: %d", resp.StatusCode), nil)
	default:
		return nil, NewLookupError(CategoryInternal, r.name, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, NewLookupError(CategoryContractMismatch, r.name, "failed to parse response", err)
	}
	if parsed.Registered == nil {
		return nil, NewLookupError(CategoryContractMismatch, r.name, "response missing registered field", nil)
	}

	result.Registered = *parsed.Registered
	if result.Registered {
		result.MatchedName = strings.TrimSpace(parsed.DoctorName)
	}
	if parsed.CheckedAt != nil {
		result.CheckedAt = parsed.CheckedAt.UTC()
	}
	return result, nil
}

// Health checks the registry's health endpoint.
func (r *HTTPRegistry) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	r.authorize(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return r.transportError(ctx, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))

	if resp.StatusCode != http.StatusOK {
		return NewLookupError(CategoryOutage, r.name, fmt.Sprintf("health check returned %d", resp.StatusCode), nil)
	}
	return nil
}

func (r *HTTPRegistry) authorize(req *http.Request) {
	if r.apiKey != "" {
		req.Header.Set("X-API-Key", r.apiKey)
	}
}

func (r *HTTPRegistry) transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
		return NewLookupError(CategoryTimeout, r.name, "request timeout", err)
	}
	return NewLookupError(CategoryOutage, r.name, "failed to execute request", err)
}

func isTimeout(err error) bool {
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
