package auth

import (
	"context"
	"strings"
)

// ForgotPassword issues a single-use reset code for a known email.
// Unlike login this IS allowed to reveal existence: the original flow
// returns 404 for unknown emails and the UI depends on it.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.otp.Generate()
	if err != nil {
		return err
	}
	if err := s.codes.Save(ctx, resetKey(email), code, s.otpTTL); err != nil {
		return err
	}

	_ = s.sender.SendCode(ctx, u.Email, code)

	s.audit("password_reset_requested", map[string]string{"user_id": u.ID})
	return nil
}

// ResetPassword consumes the reset code and replaces the password hash.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := s.codes.Consume(ctx, resetKey(email), code); err != nil {
		return err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}

	s.audit("password_reset", map[string]string{"user_id": u.ID})
	return nil
}
