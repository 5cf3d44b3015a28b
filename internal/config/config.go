package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// App
	Env string // dev / staging / prod
	// HTTP
	HTTPAddr string
	// Auth / Security
	JWTSecret      string
	JWTIssuer      string
	AccessTokenTTL time.Duration
	OTPTTL         time.Duration

	// Public surface
	PublicBaseURL  string // how clients reach this server, e.g. http://localhost:5000
	FrontendOrigin string // where the OAuth callback redirects, e.g. http://localhost:5173
	UploadDir      string

	// Optional infrastructure (memory fallbacks when unset)
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RabbitURL     string

	// Outbound collaborators
	OpenAIKey          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	S3Bucket string
	S3Region string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("ENV", "dev"),
		HTTPAddr: getEnv("HTTP_ADDR", ":5000"),
	}

	// JWT_SECRET is required outside dev; in dev fall back to a fixed
	// secret so the demo runs with zero setup.
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.Env != "dev" {
			return nil, fmt.Errorf("missing required env var: JWT_SECRET")
		}
		cfg.JWTSecret = "dev_secret_key"
	}
	cfg.JWTIssuer = getEnv("JWT_ISSUER", "eventflow")

	ttl, err := getDuration("ACCESS_TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.AccessTokenTTL = ttl

	otl, err := getDuration("OTP_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.OTPTTL = otl

	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", "http://localhost:5000")
	cfg.FrontendOrigin = getEnv("FRONTEND_ORIGIN", "http://localhost:5173")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")

	// Optional infrastructure. Unset means the in-memory fallback is used;
	// the service must come up without any backing services.
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RabbitURL = os.Getenv("RABBIT_URL")

	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GoogleClientID = os.Getenv("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	cfg.GoogleCallbackURL = getEnv("GOOGLE_CALLBACK_URL", cfg.PublicBaseURL+"/api/auth/google/callback")

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = getEnvInt("SMTP_PORT", 587)
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")

	cfg.S3Bucket = os.Getenv("S3_BUCKET")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")

	rt, err := getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPReadTimeout = rt

	wt, err := getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPWriteTimeout = wt

	it, err := getDuration("HTTP_IDLE_TIMEOUT", time.Minute)
	if err != nil {
		return nil, err
	}
	cfg.HTTPIdleTimeout = it

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q: %w", key, v, err)
	}
	return d, nil
}
