package domain

import "time"

type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Phone        string
	PasswordHash string
	Role         string
	ProfileImage string
	Verified     bool
	GoogleID     string
}

// PendingSignup is a provisional user held until OTP confirmation
// promotes it to a permanent User. Keyed by phone number.
type PendingSignup struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	PasswordHash string
	Role         string
	ProfileImage string
	ExpiresAt    time.Time
}

func (p PendingSignup) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}
