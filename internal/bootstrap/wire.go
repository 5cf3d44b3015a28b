package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/baechuer/eventflow/internal/application/assist"
	"github.com/baechuer/eventflow/internal/application/auth"
	"github.com/baechuer/eventflow/internal/application/events"
	"github.com/baechuer/eventflow/internal/application/reports"
	"github.com/baechuer/eventflow/internal/config"
	"github.com/baechuer/eventflow/internal/domain"
	"github.com/baechuer/eventflow/internal/infrastructure/mailer"
	"github.com/baechuer/eventflow/internal/infrastructure/memory"
	rabbitmq_pub "github.com/baechuer/eventflow/internal/infrastructure/messaging/rabbitmq"
	"github.com/baechuer/eventflow/internal/infrastructure/oauth"
	"github.com/baechuer/eventflow/internal/infrastructure/openai"
	"github.com/baechuer/eventflow/internal/infrastructure/redis"
	"github.com/baechuer/eventflow/internal/infrastructure/security"
	"github.com/baechuer/eventflow/internal/infrastructure/storage"
	"github.com/baechuer/eventflow/internal/logger"
	http_handlers "github.com/baechuer/eventflow/internal/transport/http/handlers"
	"github.com/baechuer/eventflow/internal/transport/http/middleware"
	"github.com/baechuer/eventflow/internal/transport/http/response"
	"github.com/baechuer/eventflow/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewPublisher func(rabbitURL string) (reports.Recorder, error)

	NewRouter func(router.Deps) (http.Handler, error)

	NewOAuthProvider func(cfg *config.Config) auth.OAuthProvider

	NewImageStorage func(cfg *config.Config) (events.ImageStorage, error)
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	var cleanupFns []func()

	// 1) redis (best-effort; memory fallback)
	var redisCli RedisClient
	if deps.NewRedis != nil && cfg.RedisAddr != "" {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using memory stores")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	// 2) volatile stores
	userRepo := memory.NewUserRepo()
	eventRepo := memory.NewEventRepo()
	oauthStateStore := memory.NewOAuthStateStore()
	activityLog := memory.NewActivityLog()

	var pendingStore auth.PendingSignupStore
	var codeStore auth.CodeStore
	if rc, ok := redisCli.(*redis.Client); ok {
		pendingStore = redis.NewPendingSignupStore(rc)
		codeStore = redis.NewCodeStore(rc)
	} else {
		pendingStore = memory.NewPendingSignupStore()
		codeStore = memory.NewCodeStore()
	}

	// 3) activity publisher (best-effort; feed-only fallback)
	recorder := reports.Recorder(activityLog)
	if deps.NewPublisher != nil && cfg.RabbitURL != "" {
		pub, err := deps.NewPublisher(cfg.RabbitURL)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; activity stays local")
		} else {
			recorder = multiRecorder{activityLog, pub}
			if c, ok := pub.(interface{ Close() error }); ok {
				cleanupFns = append(cleanupFns, func() { _ = c.Close() })
			}
		}
	}

	// 4) outbound collaborators
	var googleClient auth.OAuthProvider
	if deps.NewOAuthProvider != nil {
		googleClient = deps.NewOAuthProvider(cfg)
	} else {
		googleClient = oauth.NewGoogleClient(
			cfg.GoogleClientID,
			cfg.GoogleClientSecret,
			cfg.GoogleCallbackURL,
		)
	}

	var images events.ImageStorage
	if deps.NewImageStorage != nil {
		images, err = deps.NewImageStorage(cfg)
	} else {
		images, err = defaultImageStorage(cfg)
	}
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	codeSender := mailer.New(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
	})

	// 5) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(12)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer)
	otpGen := security.NewOTPGenerator(6)

	// seed (dev only)
	if cfg.Env == "dev" {
		if err := memory.SeedUsers(context.Background(), userRepo, hasher, ""); err != nil {
			logger.Logger.Warn().Err(err).Msg("user seed failed")
		}
		if err := memory.SeedEvents(context.Background(), eventRepo); err != nil {
			logger.Logger.Warn().Err(err).Msg("event seed failed")
		}
	}

	// 6) services
	authSvc := auth.NewService(
		userRepo,
		pendingStore,
		codeStore,
		hasher,
		signer,
		otpGen,
		codeSender,
		auth.Config{
			AccessTTL: cfg.AccessTokenTTL,
			OTPTTL:    cfg.OTPTTL,
		},
	)

	authSvc = authSvc.WithAudit(func(action string, fields map[string]string) {
		evt := logger.Logger.Info().
			Bool("audit", true).
			Str("action", action)
		for k, v := range fields {
			evt = evt.Str(k, v)
		}
		evt.Msg("audit")

		// Signups feed the activity report like the demo dashboard expects.
		if action == "signup_verified" {
			recorder.Record("New Registration", "user "+fields["user_id"], "success")
		}
	})

	eventSvc := events.NewService(eventRepo, cfg.PublicBaseURL, recorder)
	assistSvc := assist.NewService(openai.NewClient(cfg.OpenAIKey))
	reportSvc := reports.NewService(activityLog)

	// 7) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc, images)
	oauthH := http_handlers.NewOAuthHandler(authSvc, googleClient, oauthStateStore, cfg.FrontendOrigin)
	eventsH := http_handlers.NewEventsHandler(eventSvc, images)
	assistH := http_handlers.NewAssistHandler(assistSvc)
	reportsH := http_handlers.NewReportsHandler(reportSvc)
	healthH := http_handlers.NewHealthHandler(redisCli)

	authMW := middleware.Auth(signer, response.WriteError)
	adminMW := middleware.RequireRole(response.WriteError, string(domain.RoleAdmin))

	// 8) router
	newRouter := deps.NewRouter
	if newRouter == nil {
		newRouter = router.New
	}
	mux, err := newRouter(router.Deps{
		Health:  healthH,
		Auth:    authH,
		OAuth:   oauthH,
		Events:  eventsH,
		Assist:  assistH,
		Reports: reportsH,

		AuthMW:  authMW,
		AdminMW: adminMW,

		FrontendOrigin: cfg.FrontendOrigin,
		UploadDir:      uploadDirFor(images),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 9) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

// defaultImageStorage prefers S3 when a bucket is configured, local disk
// otherwise.
func defaultImageStorage(cfg *config.Config) (events.ImageStorage, error) {
	if cfg.S3Bucket != "" {
		return storage.NewS3Storage(context.Background(), storage.S3Config{
			Bucket: cfg.S3Bucket,
			Region: cfg.S3Region,
		})
	}
	return storage.NewDiskStorage(cfg.UploadDir)
}

// uploadDirFor enables the static file server only for disk-backed storage;
// S3 objects are served by their public URLs.
func uploadDirFor(images events.ImageStorage) string {
	if d, ok := images.(*storage.DiskStorage); ok {
		return d.Dir()
	}
	return ""
}

// multiRecorder fans one activity record out to every sink.
type multiRecorder []reports.Recorder

func (m multiRecorder) Record(action, details, kind string) {
	for _, r := range m {
		r.Record(action, details, kind)
	}
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewPublisher: func(url string) (reports.Recorder, error) {
			return rabbitmq_pub.NewPublisher(url)
		},
		NewRouter: router.New,
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
