package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"healthsphere/internal/doctor/models"
	"healthsphere/internal/sentinel"
	id "healthsphere/pkg/domain"
)

// InMemoryStore keeps doctors and attempts in process memory.
type InMemoryStore struct {
	mu       sync.RWMutex
	doctors  map[id.DoctorID]*models.Doctor
	byEmail  map[string]id.DoctorID
	attempts map[id.DoctorID][]*models.Attempt
}

// NewInMemory creates an empty store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		doctors:  make(map[id.DoctorID]*models.Doctor),
		byEmail:  make(map[string]id.DoctorID),
		attempts: make(map[id.DoctorID][]*models.Attempt),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *InMemoryStore) Create(_ context.Context, doctor *models.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(doctor)
}

// CreateWithAttempt stores a new doctor and their first attempt under one lock.
func (s *InMemoryStore) CreateWithAttempt(_ context.Context, doctor *models.Doctor, attempt *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.create(doctor); err != nil {
		return err
	}
	cp := *attempt
	s.attempts[attempt.DoctorID] = append(s.attempts[attempt.DoctorID], &cp)
	return nil
}

func (s *InMemoryStore) create(doctor *models.Doctor) error {
	key := emailKey(doctor.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	cp := *doctor
	s.doctors[doctor.ID] = &cp
	s.byEmail[key] = doctor.ID
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, doctorID id.DoctorID) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors[doctorID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (s *InMemoryStore) FindByEmail(_ context.Context, email string) (*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doctorID, ok := s.byEmail[emailKey(email)]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *s.doctors[doctorID]
	return &cp, nil
}

func (s *InMemoryStore) Update(_ context.Context, doctor *models.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.doctors[doctor.ID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *doctor
	s.doctors[doctor.ID] = &cp
	return nil
}

// CountAwaitingReview returns how many profiles await an admin.
func (s *InMemoryStore) CountAwaitingReview(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, d := range s.doctors {
		if d.VerificationStatus.AwaitingReview() {
			n++
		}
	}
	return n, nil
}

// ListAwaitingReview returns profiles awaiting an admin, oldest first.
func (s *InMemoryStore) ListAwaitingReview(_ context.Context, limit int) ([]*models.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Doctor
	for _, d := range s.doctors {
		if d.VerificationStatus.AwaitingReview() {
			cp := *d
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.Doctor) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) SaveAttempt(_ context.Context, attempt *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *attempt
	s.attempts[attempt.DoctorID] = append(s.attempts[attempt.DoctorID], &cp)
	return nil
}

// ListAttempts returns a doctor's attempts, newest first.
func (s *InMemoryStore) ListAttempts(_ context.Context, doctorID id.DoctorID) ([]*models.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	src := s.attempts[doctorID]
	out := make([]*models.Attempt, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		cp := *src[i]
		out = append(out, &cp)
	}
	return out, nil
}
