package auth

import (
	"time"

	"github.com/baechuer/eventflow/internal/domain"
)

type Service struct {
	users   UserRepo
	pending PendingSignupStore
	codes   CodeStore
	hasher  PasswordHasher
	signer  TokenSigner
	otp     CodeGenerator
	sender  CodeSender

	accessTTL time.Duration
	otpTTL    time.Duration
	audit     func(action string, fields map[string]string)
}

type Config struct {
	AccessTTL time.Duration
	OTPTTL    time.Duration
}

func NewService(
	users UserRepo,
	pending PendingSignupStore,
	codes CodeStore,
	hasher PasswordHasher,
	signer TokenSigner,
	otp CodeGenerator,
	sender CodeSender,
	cfg Config,
) *Service {
	accessTTL := cfg.AccessTTL
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	otpTTL := cfg.OTPTTL
	if otpTTL <= 0 {
		otpTTL = 10 * time.Minute
	}
	return &Service{
		users:   users,
		pending: pending,
		codes:   codes,
		hasher:  hasher,
		signer:  signer,
		otp:     otp,
		sender:  sender,

		accessTTL: accessTTL,
		otpTTL:    otpTTL,
		audit:     func(string, map[string]string) {},
	}
}

func (s *Service) WithAudit(fn func(action string, fields map[string]string)) *Service {
	if fn != nil {
		s.audit = fn
	}
	return s
}

// AuthTokens is the common token output for handlers/DTO mapping.
type AuthTokens struct {
	AccessToken string
	ExpiresIn   int64  // seconds
	TokenType   string // "Bearer"
}

// issueToken signs a stateless access token for a user. There is no
// session table, so revocation before expiry is not possible.
func (s *Service) issueToken(u domain.User) (AuthTokens, error) {
	access, err := s.signer.SignAccessToken(u.ID, u.Role, u.Email, s.accessTTL)
	if err != nil {
		return AuthTokens{}, err
	}
	return AuthTokens{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.accessTTL.Seconds()),
	}, nil
}

// resetKey scopes password-reset codes away from signup codes, which
// are keyed by bare phone number.
func resetKey(email string) string { return "reset:" + email }
