package memory

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/baechuer/eventflow/internal/domain"
)

// CodeStore keeps single-use verification codes with a TTL.
// A wrong guess does not consume the stored code.
type CodeStore struct {
	mu   sync.Mutex
	data map[string]codeEntry
}

type codeEntry struct {
	code      string
	expiresAt time.Time
}

func NewCodeStore() *CodeStore {
	return &CodeStore{data: make(map[string]codeEntry)}
}

func (s *CodeStore) Save(ctx context.Context, key string, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = codeEntry{code: code, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *CodeStore) Consume(ctx context.Context, key string, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return domain.ErrInvalidCode()
	}
	if time.Now().After(e.expiresAt) {
		delete(s.data, key)
		return domain.ErrInvalidCode()
	}
	if subtle.ConstantTimeCompare([]byte(e.code), []byte(code)) != 1 {
		return domain.ErrInvalidCode()
	}

	delete(s.data, key) // single use
	return nil
}
