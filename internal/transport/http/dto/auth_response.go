package dto

import (
	"github.com/baechuer/eventflow/internal/application/auth"
	"github.com/baechuer/eventflow/internal/domain"
)

// UserView is the standard user payload.
type UserView struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	Verified     bool   `json:"verified"`
}

// TokensView is the standard access token payload.
type TokensView struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // seconds
}

// AuthData is returned by verify/login/otp flows.
type AuthData struct {
	User   UserView   `json:"user"`
	Tokens TokensView `json:"tokens"`
}

// SignupData acknowledges a started signup. The code is echoed because
// this is a demo; real delivery happens through the code sender.
type SignupData struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// MeData is returned by /me.
type MeData struct {
	User UserView `json:"user"`
}

type StatusData struct {
	Status string `json:"status"` // "ok"
}

// OTPData acknowledges an issued phone code (echoed for the demo).
type OTPData struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

func NewUserView(u domain.User) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Phone:        u.Phone,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		Verified:     u.Verified,
	}
}

func NewTokensView(t auth.AuthTokens) TokensView {
	return TokensView{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
	}
}

func NewAuthData(u domain.User, t auth.AuthTokens) AuthData {
	return AuthData{User: NewUserView(u), Tokens: NewTokensView(t)}
}
