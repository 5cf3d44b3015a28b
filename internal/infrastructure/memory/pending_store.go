package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baechuer/eventflow/internal/domain"
)

// PendingSignupStore holds provisional signups keyed by phone.
// Expired entries are purged lazily on lookup.
type PendingSignupStore struct {
	mu   sync.Mutex
	data map[string]domain.PendingSignup
}

func NewPendingSignupStore() *PendingSignupStore {
	return &PendingSignupStore{data: make(map[string]domain.PendingSignup)}
}

func (s *PendingSignupStore) Put(ctx context.Context, p domain.PendingSignup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[p.Phone] = p
	return nil
}

func (s *PendingSignupStore) Get(ctx context.Context, phone string) (domain.PendingSignup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.data[phone]
	if !ok {
		return domain.PendingSignup{}, domain.ErrNoPendingSignup()
	}
	if p.Expired(time.Now()) {
		delete(s.data, phone)
		return domain.PendingSignup{}, domain.ErrNoPendingSignup()
	}
	return p, nil
}

func (s *PendingSignupStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, phone)
	return nil
}
