package dto

import (
	"net/http"
	"strings"
)

// -------- Signup / verification --------

// SignupRequest arrives as multipart form data because the profile image
// travels in the same request.
type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Phone     string `json:"phone" validate:"required,numeric,min=7,max=15"`
	Password  string `json:"password" validate:"required,min=8,max=128,password_strength"`
}

// SignupRequestFromForm pulls the fields out of an already-parsed form.
func SignupRequestFromForm(r *http.Request) SignupRequest {
	return SignupRequest{
		FirstName: strings.TrimSpace(r.FormValue("firstName")),
		LastName:  strings.TrimSpace(r.FormValue("lastName")),
		Email:     strings.TrimSpace(strings.ToLower(r.FormValue("email"))),
		Phone:     strings.TrimSpace(r.FormValue("phone")),
		Password:  r.FormValue("password"),
	}
}

func (r *SignupRequest) Validate() error { return check(r) }

type VerifySignupRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

func (r *VerifySignupRequest) Validate() error { return check(r) }

// -------- Core auth --------

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return check(r)
}

// -------- Password reset --------

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return check(r)
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=128,password_strength"`
}

func (r *ResetPasswordRequest) Validate() error {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
	return check(r)
}

// -------- Phone codes --------

type SendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

func (r *SendOTPRequest) Validate() error { return check(r) }

type VerifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

func (r *VerifyOTPRequest) Validate() error { return check(r) }
