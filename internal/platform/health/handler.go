// Package health serves the liveness, readiness and status probes.
//
// Readiness distinguishes required dependencies (the doctor database) from
// optional ones (lookup cache, audit stream, remote registry). A failing
// optional check reports "degraded" and keeps the pod in rotation.
package health

import (
	"cmp"
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"healthsphere/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Readiness states.
const (
	StatusReady    = "ready"
	StatusDegraded = "degraded"
	StatusNotReady = "not_ready"
)

// DefaultCheckTimeout bounds one readiness round.
const DefaultCheckTimeout = 3 * time.Second

// CheckFunc returns nil when the dependency is usable.
type CheckFunc func(ctx context.Context) error

type check struct {
	name     string
	fn       CheckFunc
	required bool
}

type Handler struct {
	startTime    time.Time
	environment  string
	checkTimeout time.Duration

	mu     sync.RWMutex
	checks []check
}

func New(environment string) *Handler {
	return &Handler{
		startTime:    time.Now(),
		environment:  environment,
		checkTimeout: DefaultCheckTimeout,
	}
}

// RegisterCheck adds a required dependency. Its failure fails readiness.
func (h *Handler) RegisterCheck(name string, fn CheckFunc) {
	h.register(check{name: name, fn: fn, required: true})
}

// RegisterOptionalCheck adds a dependency whose failure only degrades readiness.
func (h *Handler) RegisterOptionalCheck(name string, fn CheckFunc) {
	h.register(check{name: name, fn: fn})
}

func (h *Handler) register(c check) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks = slices.DeleteFunc(h.checks, func(existing check) bool { return existing.name == c.name })
	h.checks = append(h.checks, c)
	slices.SortFunc(h.checks, func(a, b check) int { return cmp.Compare(a.name, b.name) })
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness runs every check concurrently under one deadline.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	resp := h.Check(r.Context())
	status := http.StatusOK
	if resp.Status == StatusNotReady {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}

// Check runs the registered checks and folds them into one readiness state.
func (h *Handler) Check(ctx context.Context) ReadinessResponse {
	h.mu.RLock()
	checks := slices.Clone(h.checks)
	h.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, h.checkTimeout)
	defer cancel()

	results := make([]error, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			// Per-check errors are collected, not returned, so siblings keep running.
			results[i] = c.fn(ctx)
			return nil
		})
	}
	_ = g.Wait()

	resp := ReadinessResponse{Status: StatusReady, Checks: make(map[string]string, len(checks))}
	for i, c := range checks {
		err := results[i]
		if err == nil {
			resp.Checks[c.name] = "up"
			continue
		}
		resp.Checks[c.name] = "down: " + err.Error()
		switch {
		case c.required:
			resp.Status = StatusNotReady
		case resp.Status == StatusReady:
			resp.Status = StatusDegraded
		}
	}
	return resp
}

type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}
