package auth

import (
	"context"

	"github.com/baechuer/eventflow/internal/domain"
)

// SendOTP re-issues a code for a phone number outside the signup flow
// (re-verification, phone-code login).
func (s *Service) SendOTP(ctx context.Context, phone string) (string, error) {
	code, err := s.otp.Generate()
	if err != nil {
		return "", err
	}
	if err := s.codes.Save(ctx, phone, code, s.otpTTL); err != nil {
		return "", err
	}
	_ = s.sender.SendCode(ctx, phone, code)
	return code, nil
}

// VerifyOTP is the legacy phone-code login: a valid code for a phone that
// belongs to an existing user logs that user in. The old behavior of
// minting a throwaway identity for unknown phones is not kept.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (LoginResult, error) {
	if err := s.codes.Consume(ctx, phone, code); err != nil {
		return LoginResult{}, err
	}

	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return LoginResult{}, domain.ErrUserNotFound()
	}

	toks, err := s.issueToken(u)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{User: u, Tokens: toks}, nil
}
