package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/eventflow/internal/domain"
)

// PendingSignupStore holds not-yet-verified signups in Redis. The key TTL
// doubles as the signup expiry, so abandoned signups vanish on their own.
type PendingSignupStore struct {
	rdb    redisCmdable
	prefix string
}

func NewPendingSignupStore(c *Client) *PendingSignupStore {
	var rdb redisCmdable
	if c != nil {
		rdb = c.rdb
	}
	return &PendingSignupStore{
		rdb:    rdb,
		prefix: "pending_signup:",
	}
}

func (s *PendingSignupStore) Put(ctx context.Context, p domain.PendingSignup) error {
	phone := strings.TrimSpace(p.Phone)
	if phone == "" {
		return domain.ErrMissingField("phone")
	}
	if s.rdb == nil {
		return errors.New("redis pending store not configured")
	}

	ttl := time.Until(p.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrInvalidField("expires_at", "must be in the future")
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal pending signup: %w", err)
	}
	return s.rdb.Set(ctx, s.prefix+phone, raw, ttl).Err()
}

func (s *PendingSignupStore) Get(ctx context.Context, phone string) (domain.PendingSignup, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.PendingSignup{}, domain.ErrMissingField("phone")
	}
	if s.rdb == nil {
		return domain.PendingSignup{}, errors.New("redis pending store not configured")
	}

	raw, err := s.rdb.Get(ctx, s.prefix+phone).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.PendingSignup{}, domain.ErrNoPendingSignup()
	}
	if err != nil {
		return domain.PendingSignup{}, fmt.Errorf("pending signup lookup: %w", err)
	}

	var p domain.PendingSignup
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.PendingSignup{}, fmt.Errorf("unmarshal pending signup: %w", err)
	}
	return p, nil
}

func (s *PendingSignupStore) Delete(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return domain.ErrMissingField("phone")
	}
	if s.rdb == nil {
		return errors.New("redis pending store not configured")
	}
	return s.rdb.Del(ctx, s.prefix+phone).Err()
}
