package auth

import (
	"context"
	"strings"
	"time"

	"github.com/baechuer/eventflow/internal/domain"
)

// SignupInput is the collected profile from the signup form. ProfileImage
// is a storage reference (already persisted by the handler), not raw bytes.
type SignupInput struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Password     string
	ProfileImage string
}

// SignupResult echoes the code back to the caller. Acceptable only because
// this is a demo; production delivery is out-of-band via the CodeSender.
type SignupResult struct {
	Phone string
	Code  string
}

// Signup starts the NEW -> PENDING_VERIFICATION transition: hash the
// password, park the profile keyed by phone, and issue a single-use code.
// No permanent user exists until the code is verified.
func (s *Service) Signup(ctx context.Context, in SignupInput) (SignupResult, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return SignupResult{}, domain.ErrEmailAlreadyExists()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return SignupResult{}, err
	}

	p := domain.PendingSignup{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         string(domain.RoleParticipant),
		ProfileImage: in.ProfileImage,
		ExpiresAt:    time.Now().Add(s.otpTTL),
	}
	if err := s.pending.Put(ctx, p); err != nil {
		return SignupResult{}, err
	}

	code, err := s.otp.Generate()
	if err != nil {
		return SignupResult{}, err
	}
	if err := s.codes.Save(ctx, in.Phone, code, s.otpTTL); err != nil {
		return SignupResult{}, err
	}

	// Delivery is best effort; the mock sender only logs.
	_ = s.sender.SendCode(ctx, in.Phone, code)

	s.audit("signup_started", map[string]string{"phone": in.Phone})

	return SignupResult{Phone: in.Phone, Code: code}, nil
}
