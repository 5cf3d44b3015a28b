package auth

import (
	"context"
	"time"

	"github.com/baechuer/eventflow/internal/domain"
)

/*
UserRepo
--------
Persistence port for verified users.
Only describes WHAT the auth flow needs, not HOW it's stored.
*/
type UserRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByPhone(ctx context.Context, phone string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error
}

/*
PendingSignupStore
------------------
Provisional signups awaiting OTP confirmation, keyed by phone.
Entries are time-bounded; Get must not return expired records.
*/
type PendingSignupStore interface {
	Put(ctx context.Context, p domain.PendingSignup) error
	Get(ctx context.Context, phone string) (domain.PendingSignup, error)
	Delete(ctx context.Context, phone string) error
}

/*
CodeStore
---------
Single-use numeric verification codes with a TTL.
Consume deletes the code only on a successful match, so a wrong
guess does not burn the code.
*/
type CodeStore interface {
	Save(ctx context.Context, key string, code string, ttl time.Duration) error
	Consume(ctx context.Context, key string, code string) error
}

/*
PasswordHasher
--------------
Abstracts bcrypt / argon2.
*/
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error // nil if match
}

/*
TokenSigner
-----------
Issues and verifies access tokens (JWT).
Used by service + auth middleware.
*/
type TokenClaims struct {
	UserID string
	Role   string
	Email  string
	Exp    time.Time
}

type TokenSigner interface {
	SignAccessToken(userID, role, email string, ttl time.Duration) (string, error)
	VerifyAccessToken(token string) (TokenClaims, error)
}

/*
CodeGenerator
-------------
Produces the numeric one-time codes.
*/
type CodeGenerator interface {
	Generate() (string, error)
}

/*
CodeSender
----------
Out-of-band delivery of codes (SMS / email). The demo deployment
uses a mock sender that only logs; signup additionally echoes the
code in the response so the flow stays testable end to end.
*/
type CodeSender interface {
	SendCode(ctx context.Context, to string, code string) error
}
