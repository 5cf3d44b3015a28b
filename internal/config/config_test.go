package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":5000", cfg.HTTPAddr)
	require.Equal(t, "dev_secret_key", cfg.JWTSecret)
	require.Equal(t, "eventflow", cfg.JWTIssuer)
	require.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, 10*time.Minute, cfg.OTPTTL)
	require.Equal(t, "http://localhost:5000", cfg.PublicBaseURL)
	require.Equal(t, cfg.PublicBaseURL+"/api/auth/google/callback", cfg.GoogleCallbackURL)
}

func TestLoadRequiresJWTSecretOutsideDev(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadHonorsOverrides(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Equal(t, "super-secret", cfg.JWTSecret)
	require.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 2525, cfg.SMTPPort)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
