package dto

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/baechuer/eventflow/internal/domain"
)

func TestSignupRequestValidation(t *testing.T) {
	valid := SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "0400111222",
		Password:  "Password1",
	}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*SignupRequest)
		code   string
	}{
		{"missing first name", func(r *SignupRequest) { r.FirstName = "" }, "missing_field"},
		{"bad email", func(r *SignupRequest) { r.Email = "not-an-email" }, "invalid_field"},
		{"short phone", func(r *SignupRequest) { r.Phone = "123" }, "invalid_field"},
		{"alpha phone", func(r *SignupRequest) { r.Phone = "04001112ab" }, "invalid_field"},
		{"short password", func(r *SignupRequest) { r.Password = "Pw1" }, "invalid_field"},
		{"no uppercase", func(r *SignupRequest) { r.Password = "password1" }, "invalid_field"},
		{"no digit", func(r *SignupRequest) { r.Password = "Passwordx" }, "invalid_field"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			err := req.Validate()
			require.Error(t, err)
			require.True(t, domain.Is(err, tc.code), "got %v", err)
		})
	}
}

func TestLoginRequestNormalizesEmail(t *testing.T) {
	req := LoginRequest{Email: "  Ada@Example.COM ", Password: "x"}
	require.NoError(t, req.Validate())
	require.Equal(t, "ada@example.com", req.Email)
}

func TestVerifySignupRequestCodeShape(t *testing.T) {
	ok := VerifySignupRequest{Phone: "0400111222", Code: "123456"}
	require.NoError(t, ok.Validate())

	short := VerifySignupRequest{Phone: "0400111222", Code: "123"}
	require.Error(t, short.Validate())

	alpha := VerifySignupRequest{Phone: "0400111222", Code: "12345a"}
	require.Error(t, alpha.Validate())
}

func TestResetPasswordRequestValidation(t *testing.T) {
	ok := ResetPasswordRequest{Email: "a@example.com", Code: "123456", NewPassword: "Password1"}
	require.NoError(t, ok.Validate())

	weak := ResetPasswordRequest{Email: "a@example.com", Code: "123456", NewPassword: "password1"}
	require.True(t, domain.Is(weak.Validate(), "invalid_field"))
}

func TestCreateEventRequestValidation(t *testing.T) {
	ok := CreateEventRequest{Title: "Launch Party", Date: "2026-09-01", Location: "Sydney", Price: 25}
	require.NoError(t, ok.Validate())

	missing := CreateEventRequest{Date: "2026-09-01", Location: "Sydney"}
	require.True(t, domain.Is(missing.Validate(), "missing_field"))

	negative := CreateEventRequest{Title: "X", Date: "2026-09-01", Location: "Sydney", Price: -1}
	require.Error(t, negative.Validate())
}

func TestChatRequestValidation(t *testing.T) {
	ok := ChatRequest{
		Message: "hello",
		History: []ChatTurn{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hey"}},
	}
	require.NoError(t, ok.Validate())

	badRole := ChatRequest{
		Message: "hello",
		History: []ChatTurn{{Role: "system", Content: "hi"}},
	}
	require.Error(t, badRole.Validate())
}
