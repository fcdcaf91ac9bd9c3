package memory

import (
	"context"
	"slices"
	"sync"

	audit "healthsphere/pkg/platform/audit"
)

// InMemoryStore keeps audit events in process memory.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByDoctor returns the doctor's events, newest first.
func (s *InMemoryStore) ListByDoctor(_ context.Context, doctorID string) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Event
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].DoctorID == doctorID {
			out = append(out, s.events[i])
		}
	}
	return out, nil
}

// ListRecent returns up to limit events, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.events)
	slices.Reverse(out)
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
