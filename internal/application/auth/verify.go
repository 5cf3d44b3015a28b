package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/baechuer/eventflow/internal/domain"
)

type VerifyResult struct {
	User   domain.User
	Tokens AuthTokens
}

// VerifySignup completes PENDING_VERIFICATION -> VERIFIED: on a code match
// the pending profile is materialized as a permanent user and both the
// pending record and the code are destroyed, so a second attempt with the
// same code fails with no_pending_signup.
func (s *Service) VerifySignup(ctx context.Context, phone, code string) (VerifyResult, error) {
	p, err := s.pending.Get(ctx, phone)
	if err != nil {
		return VerifyResult{}, err
	}

	if err := s.codes.Consume(ctx, phone, code); err != nil {
		// Wrong code leaves the pending record intact for a retry.
		return VerifyResult{}, err
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Email:        p.Email,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		ProfileImage: p.ProfileImage,
		Verified:     true,
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return VerifyResult{}, err
	}

	_ = s.pending.Delete(ctx, phone)

	toks, err := s.issueToken(created)
	if err != nil {
		return VerifyResult{}, err
	}

	s.audit("signup_verified", map[string]string{"user_id": created.ID})

	return VerifyResult{User: created, Tokens: toks}, nil
}
