package http_handlers

import (
	"net/http"
	"net/url"

	"github.com/baechuer/eventflow/internal/application/auth"
	"github.com/baechuer/eventflow/internal/logger"
	"github.com/baechuer/eventflow/internal/transport/http/response"
)

// OAuthHandler drives the Google login flow. The callback hands the token
// to the frontend via a redirect query, matching what the SPA expects.
type OAuthHandler struct {
	svc            *auth.Service
	google         auth.OAuthProvider
	stateStore     auth.OAuthStateStore
	frontendOrigin string
}

func NewOAuthHandler(svc *auth.Service, google auth.OAuthProvider, stateStore auth.OAuthStateStore, frontendOrigin string) *OAuthHandler {
	return &OAuthHandler{
		svc:            svc,
		google:         google,
		stateStore:     stateStore,
		frontendOrigin: frontendOrigin,
	}
}

func (h *OAuthHandler) deps() auth.OAuthDeps {
	return auth.OAuthDeps{Google: h.google, StateStore: h.stateStore}
}

// Start redirects the browser to Google's authorization page.
// GET /api/auth/google
func (h *OAuthHandler) Start(w http.ResponseWriter, r *http.Request) {
	authURL, err := h.svc.OAuthStart(r.Context(), h.deps())
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	http.Redirect(w, r, authURL, http.StatusFound)
}

// Callback completes the flow and sends the browser back to the frontend
// login page with the token in the query string.
// GET /api/auth/google/callback?code=...&state=...
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	stateToken := r.URL.Query().Get("state")

	if errCode := r.URL.Query().Get("error"); errCode != "" {
		h.redirectWithError(w, r, errCode)
		return
	}
	if code == "" || stateToken == "" {
		h.redirectWithError(w, r, "missing_code_or_state")
		return
	}

	res, err := h.svc.OAuthCallback(r.Context(), stateToken, code, h.deps())
	if err != nil {
		logger.WithCtx(r.Context()).Warn().Err(err).Msg("oauth callback failed")
		h.redirectWithError(w, r, "oauth_failed")
		return
	}

	q := url.Values{}
	q.Set("token", res.Tokens.AccessToken)
	q.Set("role", res.User.Role)
	http.Redirect(w, r, h.frontendOrigin+"/login?"+q.Encode(), http.StatusFound)
}

func (h *OAuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	q := url.Values{}
	q.Set("error", code)
	http.Redirect(w, r, h.frontendOrigin+"/login?"+q.Encode(), http.StatusFound)
}
