package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/baechuer/eventflow/internal/domain"
)

// CodeStore keeps single-use verification codes in Redis with native TTLs.
type CodeStore struct {
	rdb    redisCmdable
	prefix string // e.g. "otp:"
}

func NewCodeStore(c *Client) *CodeStore {
	var rdb redisCmdable
	if c != nil {
		rdb = c.rdb
	}
	return &CodeStore{
		rdb:    rdb,
		prefix: "otp:",
	}
}

func (s *CodeStore) Save(ctx context.Context, key string, code string, ttl time.Duration) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrMissingField("key")
	}
	if code == "" {
		return domain.ErrMissingField("code")
	}
	if s.rdb == nil {
		return errors.New("redis code store not configured")
	}
	if ttl <= 0 {
		return domain.ErrMissingField("ttl")
	}

	// overwrite is fine (a new request issues a fresh code anyway)
	return s.rdb.Set(ctx, s.prefix+key, code, ttl).Err()
}

// Consume deletes the stored code only when it matches, atomically, so a
// wrong guess neither burns the code nor races a concurrent attempt.
func (s *CodeStore) Consume(ctx context.Context, key string, code string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrMissingField("key")
	}
	if s.rdb == nil {
		return errors.New("redis code store not configured")
	}

	const lua = `
local v = redis.call("GET", KEYS[1])
if not v then
  return 0
end
if v ~= ARGV[1] then
  return 0
end
redis.call("DEL", KEYS[1])
return 1
`
	res, err := s.rdb.Eval(ctx, lua, []string{s.prefix + key}, code).Result()
	if err != nil {
		return fmt.Errorf("code consume: %w", err)
	}
	if n, ok := res.(int64); !ok || n != 1 {
		return domain.ErrInvalidCode()
	}
	return nil
}
