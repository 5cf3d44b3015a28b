package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baechuer/eventflow/internal/application/events"
	"github.com/baechuer/eventflow/internal/application/reports"
	"github.com/baechuer/eventflow/internal/config"
	"github.com/baechuer/eventflow/internal/infrastructure/storage"
)

type fakeRedis struct {
	pingErr error
	closed  bool
}

func (f *fakeRedis) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Env:            "test",
		HTTPAddr:       ":0",
		JWTSecret:      "test-secret",
		JWTIssuer:      "test",
		AccessTokenTTL: time.Hour,
		OTPTTL:         10 * time.Minute,
		PublicBaseURL:  "http://localhost:5000",
		FrontendOrigin: "http://localhost:5173",
		UploadDir:      t.TempDir(),

		HTTPReadTimeout:  10 * time.Second,
		HTTPWriteTimeout: 30 * time.Second,
		HTTPIdleTimeout:  time.Minute,
	}
}

func testDeps(t *testing.T, cfg *config.Config) Deps {
	t.Helper()
	return Deps{
		LoadConfig: func() (*config.Config, error) { return cfg, nil },
		NewImageStorage: func(cfg *config.Config) (events.ImageStorage, error) {
			return storage.NewDiskStorage(cfg.UploadDir)
		},
	}
}

func TestNewServerWithMemoryFallbacks(t *testing.T) {
	cfg := testConfig(t)

	srv, cleanup, err := NewServerWithDeps(testDeps(t, cfg))
	require.NoError(t, err)
	defer cleanup()

	require.Equal(t, cfg.HTTPAddr, srv.Addr)
	require.Equal(t, cfg.HTTPReadTimeout, srv.ReadTimeout)
	require.NotNil(t, srv.Handler)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	// No redis was wired, so readiness only reflects the process itself.
	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewServerFallsBackWhenRedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisAddr = "localhost:6399"

	rc := &fakeRedis{pingErr: errors.New("connection refused")}
	deps := testDeps(t, cfg)
	deps.NewRedis = func(addr, password string, db int) RedisClient { return rc }

	srv, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err)
	defer cleanup()

	// The failed client is closed immediately and the server still works.
	require.True(t, rc.closed)
	require.NotNil(t, srv.Handler)
}

func TestNewServerClosesRedisOnCleanup(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisAddr = "localhost:6379"

	rc := &fakeRedis{}
	deps := testDeps(t, cfg)
	deps.NewRedis = func(addr, password string, db int) RedisClient { return rc }

	_, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err)
	require.False(t, rc.closed)

	cleanup()
	require.True(t, rc.closed)
}

func TestNewServerSurvivesPublisherFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.RabbitURL = "amqp://localhost:5672"

	deps := testDeps(t, cfg)
	deps.NewPublisher = func(url string) (reports.Recorder, error) {
		return nil, errors.New("broker down")
	}

	srv, cleanup, err := NewServerWithDeps(deps)
	require.NoError(t, err)
	defer cleanup()
	require.NotNil(t, srv.Handler)
}

func TestNewServerConfigError(t *testing.T) {
	deps := Deps{
		LoadConfig: func() (*config.Config, error) { return nil, errors.New("bad env") },
	}

	_, _, err := NewServerWithDeps(deps)
	require.Error(t, err)
}

func TestMultiRecorderFansOut(t *testing.T) {
	type rec struct{ action, details, kind string }
	var a, b []rec

	sinkA := recorderFunc(func(action, details, kind string) { a = append(a, rec{action, details, kind}) })
	sinkB := recorderFunc(func(action, details, kind string) { b = append(b, rec{action, details, kind}) })

	multiRecorder{sinkA, sinkB}.Record("Event Created", "Launch Party", "info")

	require.Len(t, a, 1)
	require.Equal(t, a, b)
}

type recorderFunc func(action, details, kind string)

func (f recorderFunc) Record(action, details, kind string) { f(action, details, kind) }
