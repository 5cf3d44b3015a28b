package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appmw "github.com/baechuer/eventflow/internal/transport/http/middleware"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Signup(w http.ResponseWriter, r *http.Request)
	VerifySignup(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	ForgotPassword(w http.ResponseWriter, r *http.Request)
	ResetPassword(w http.ResponseWriter, r *http.Request)
	SendOTP(w http.ResponseWriter, r *http.Request)
	VerifyOTP(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type OAuthHandler interface {
	Start(w http.ResponseWriter, r *http.Request)
	Callback(w http.ResponseWriter, r *http.Request)
}

type EventsHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type AssistHandler interface {
	GenerateDescription(w http.ResponseWriter, r *http.Request)
	Chat(w http.ResponseWriter, r *http.Request)
}

type ReportsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health  HealthHandler
	Auth    AuthHandler
	OAuth   OAuthHandler
	Events  EventsHandler
	Assist  AssistHandler
	Reports ReportsHandler

	AuthMW  func(http.Handler) http.Handler
	AdminMW func(http.Handler) http.Handler

	FrontendOrigin string
	UploadDir      string // empty disables the static file server
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.OAuth == nil {
		return nil, fmt.Errorf("nil OAuth handler")
	}
	if deps.Events == nil {
		return nil, fmt.Errorf("nil Events handler")
	}
	if deps.Assist == nil {
		return nil, fmt.Errorf("nil Assist handler")
	}
	if deps.Reports == nil {
		return nil, fmt.Errorf("nil Reports handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}
	if deps.AdminMW == nil {
		return nil, fmt.Errorf("nil Admin middleware")
	}

	r := chi.NewRouter()
	r.Use(appmw.RequestID)
	r.Use(appmw.Metrics)
	r.Use(appmw.CORS(deps.FrontendOrigin))

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if deps.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", deps.Auth.Signup)
			r.Post("/signup/verify", deps.Auth.VerifySignup)
			r.Post("/login", deps.Auth.Login)
			r.Post("/forgot-password", deps.Auth.ForgotPassword)
			r.Post("/reset-password", deps.Auth.ResetPassword)
			r.Post("/otp/send", deps.Auth.SendOTP)
			r.Post("/otp/verify", deps.Auth.VerifyOTP)
			r.With(deps.AuthMW).Get("/me", deps.Auth.Me)

			r.Get("/google", deps.OAuth.Start)
			r.Get("/google/callback", deps.OAuth.Callback)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", deps.Events.List)
			r.Get("/{id}", deps.Events.Get)
			r.With(deps.AuthMW).Post("/", deps.Events.Create)
			r.With(deps.AuthMW).Delete("/{id}", deps.Events.Delete)
		})

		r.With(deps.AuthMW).Post("/ai/generate", deps.Assist.GenerateDescription)
		r.With(deps.AuthMW).Post("/chat", deps.Assist.Chat)

		// Reports back the admin dashboard, hence the role guard.
		r.With(deps.AuthMW, deps.AdminMW).Get("/reports/{type}", deps.Reports.Get)
	})

	return r, nil
}
