package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"healthsphere/internal/verification/models"
	id "healthsphere/pkg/domain"
)

type entry struct {
	result   models.LookupResult
	storedAt time.Time
}

// Memory is an in-process cache for single-instance deployments.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates an in-memory cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{entries: make(map[string]entry), ttl: ttl, now: time.Now}
}

// Get returns a copy of the live entry or ErrMiss.
func (m *Memory) Get(_ context.Context, license id.LicenseNumber) (*models.LookupResult, error) {
	m.mu.RLock()
	e, ok := m.entries[license.String()]
	m.mu.RUnlock()
	if !ok || m.now().Sub(e.storedAt) >= m.ttl {
		return nil, ErrMiss
	}
	result := e.result
	return &result, nil
}

// Set stores a copy of result.
func (m *Memory) Set(_ context.Context, result *models.LookupResult) error {
	if result == nil {
		return fmt.Errorf("lookup result is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[result.LicenseNumber.String()] = entry{result: *result, storedAt: m.now()}
	return nil
}

// Purge drops expired entries and returns how many remain.
func (m *Memory) Purge() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, e := range m.entries {
		if now.Sub(e.storedAt) >= m.ttl {
			delete(m.entries, k)
		}
	}
	return len(m.entries)
}
