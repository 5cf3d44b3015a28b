package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baechuer/eventflow/internal/application/assist"
	"github.com/baechuer/eventflow/internal/application/auth"
	"github.com/baechuer/eventflow/internal/application/events"
	"github.com/baechuer/eventflow/internal/application/reports"
	"github.com/baechuer/eventflow/internal/domain"
	"github.com/baechuer/eventflow/internal/infrastructure/memory"
	"github.com/baechuer/eventflow/internal/infrastructure/oauth"
	"github.com/baechuer/eventflow/internal/infrastructure/security"
	"github.com/baechuer/eventflow/internal/infrastructure/storage"
	http_handlers "github.com/baechuer/eventflow/internal/transport/http/handlers"
	"github.com/baechuer/eventflow/internal/transport/http/middleware"
	"github.com/baechuer/eventflow/internal/transport/http/response"
	"github.com/baechuer/eventflow/internal/transport/http/router"
)

const frontendOrigin = "http://localhost:3000"

type noopSender struct{}

func (noopSender) SendCode(ctx context.Context, to, code string) error { return nil }

type offlineAI struct{}

func (offlineAI) IsConfigured() bool { return false }

func (offlineAI) Complete(ctx context.Context, messages []assist.Message, maxTokens int) (string, error) {
	return "", nil
}

// fakeGoogle stands in for the real OAuth provider so the redirect flow
// can run without network access.
type fakeGoogle struct {
	userInfo oauth.UserInfo
}

func (f *fakeGoogle) IsConfigured() bool { return true }

func (f *fakeGoogle) AuthURL(state, codeChallenge string) string {
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state + "&code_challenge=" + codeChallenge
}

func (f *fakeGoogle) ExchangeCode(ctx context.Context, code, codeVerifier string) (*oauth.TokenResponse, error) {
	return &oauth.TokenResponse{AccessToken: "upstream-token", TokenType: "Bearer"}, nil
}

func (f *fakeGoogle) GetUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error) {
	info := f.userInfo
	return &info, nil
}

type testEnv struct {
	handler http.Handler
	signer  *security.JWTSigner
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	signer := security.NewJWTSigner("test-secret", "test")
	images, err := storage.NewDiskStorage(t.TempDir())
	require.NoError(t, err)

	authSvc := auth.NewService(
		memory.NewUserRepo(),
		memory.NewPendingSignupStore(),
		memory.NewCodeStore(),
		security.NewBcryptHasher(4),
		signer,
		security.NewOTPGenerator(6),
		noopSender{},
		auth.Config{},
	)

	activity := memory.NewActivityLog()
	eventsSvc := events.NewService(memory.NewEventRepo(), "http://localhost:5000", activity)
	assistSvc := assist.NewService(offlineAI{})
	reportsSvc := reports.NewService(activity)

	google := &fakeGoogle{userInfo: oauth.UserInfo{
		Sub:        "google-sub-1",
		Email:      "oauth.user@example.com",
		GivenName:  "OAuth",
		FamilyName: "User",
	}}

	h, err := router.New(router.Deps{
		Health:  http_handlers.NewHealthHandler(nil),
		Auth:    http_handlers.NewAuthHandler(authSvc, images),
		OAuth:   http_handlers.NewOAuthHandler(authSvc, google, memory.NewOAuthStateStore(), frontendOrigin),
		Events:  http_handlers.NewEventsHandler(eventsSvc, images),
		Assist:  http_handlers.NewAssistHandler(assistSvc),
		Reports: http_handlers.NewReportsHandler(reportsSvc),

		AuthMW:  middleware.Auth(signer, response.WriteError),
		AdminMW: middleware.RequireRole(response.WriteError, string(domain.RoleAdmin)),

		FrontendOrigin: frontendOrigin,
	})
	require.NoError(t, err)

	return testEnv{handler: h, signer: signer}
}

func (e testEnv) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e testEnv) postJSON(t *testing.T, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return e.do(t, http.MethodPost, path, token, bytes.NewReader(raw), "application/json")
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func decodeErrCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func signupForm(t *testing.T, email, phone string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     email,
		"phone":     phone,
		"password":  "Password1",
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

// signupAndVerify runs the two-step signup and returns the issued access token.
func (e testEnv) signupAndVerify(t *testing.T, email, phone string) string {
	t.Helper()

	body, ct := signupForm(t, email, phone)
	rec := e.do(t, http.MethodPost, "/api/auth/signup", "", body, ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var started struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	decodeData(t, rec, &started)
	require.Equal(t, phone, started.Phone)
	require.Len(t, started.Code, 6)

	rec = e.postJSON(t, "/api/auth/signup/verify", "", map[string]string{
		"phone": phone,
		"code":  started.Code,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var authed struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	decodeData(t, rec, &authed)
	require.NotEmpty(t, authed.Tokens.AccessToken)
	return authed.Tokens.AccessToken
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/readyz", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupVerifyLoginMe(t *testing.T) {
	env := newTestEnv(t)

	token := env.signupAndVerify(t, "ada@example.com", "0400111222")

	rec := env.do(t, http.MethodGet, "/api/auth/me", token, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		User struct {
			Email    string `json:"email"`
			Role     string `json:"role"`
			Verified bool   `json:"verified"`
		} `json:"user"`
	}
	decodeData(t, rec, &me)
	require.Equal(t, "ada@example.com", me.User.Email)
	require.Equal(t, string(domain.RoleParticipant), me.User.Role)
	require.True(t, me.User.Verified)

	// The same credentials work for password login afterwards.
	rec = env.postJSON(t, "/api/auth/login", "", map[string]string{
		"email":    "Ada@Example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSignupRejectsWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"email":     "weak@example.com",
		"phone":     "0400999888",
		"password":  "alllowercase1",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	rec := env.do(t, http.MethodPost, "/api/auth/signup", "", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	env := newTestEnv(t)
	env.signupAndVerify(t, "dup@example.com", "0400111222")

	body, ct := signupForm(t, "dup@example.com", "0400333444")
	rec := env.do(t, http.MethodPost, "/api/auth/signup", "", body, ct)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "email_already_exists", decodeErrCode(t, rec))
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/api/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "Password1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "invalid_credentials", decodeErrCode(t, rec))
}

func TestEventsCreateRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"title":    "Launch Party",
		"date":     "2026-09-01",
		"location": "Sydney",
		"price":    "25",
	} {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	form := buf.Bytes()
	ct := mw.FormDataContentType()

	rec := env.do(t, http.MethodPost, "/api/events", "", bytes.NewReader(form), ct)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token := env.signupAndVerify(t, "host@example.com", "0400555666")
	rec = env.do(t, http.MethodPost, "/api/events", token, bytes.NewReader(form), ct)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Launch Party", created.Title)

	// The catalogue is public.
	rec = env.do(t, http.MethodGet, "/api/events", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []struct {
		ID string `json:"id"`
	}
	decodeData(t, rec, &listed)
	require.Len(t, listed, 1)

	rec = env.do(t, http.MethodDelete, "/api/events/"+created.ID, token, nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestReportsAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	participant, err := env.signer.SignAccessToken("u1", string(domain.RoleParticipant), "p@example.com", time.Hour)
	require.NoError(t, err)
	admin, err := env.signer.SignAccessToken("u2", string(domain.RoleAdmin), "a@example.com", time.Hour)
	require.NoError(t, err)

	rec := env.do(t, http.MethodGet, "/api/reports/revenue", "", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/reports/revenue", participant, nil, "")
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "insufficient_role", decodeErrCode(t, rec))

	rec = env.do(t, http.MethodGet, "/api/reports/revenue", admin, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rep struct {
		Title   string   `json:"title"`
		Columns []string `json:"columns"`
	}
	decodeData(t, rec, &rep)
	require.NotEmpty(t, rep.Title)
	require.NotEmpty(t, rep.Columns)

	rec = env.do(t, http.MethodGet, "/api/reports/bogus", admin, nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssistEndpointsRequireSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.postJSON(t, "/api/ai/generate", "", map[string]string{
		"title": "Launch Party", "location": "Sydney",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	token := env.signupAndVerify(t, "ai@example.com", "0400777888")
	rec = env.postJSON(t, "/api/ai/generate", token, map[string]string{
		"title": "Launch Party", "location": "Sydney",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var gen struct {
		Description string `json:"description"`
	}
	decodeData(t, rec, &gen)
	require.Contains(t, gen.Description, "Launch Party")
}

func TestGoogleOAuthRedirectFlow(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/auth/google", "", nil, "")
	require.Equal(t, http.StatusFound, rec.Code)

	loc := rec.Header().Get("Location")
	require.Contains(t, loc, "accounts.google.com")
	require.Contains(t, loc, "state=")

	state := queryParam(t, loc, "state")
	require.NotEmpty(t, state)

	rec = env.do(t, http.MethodGet, "/api/auth/google/callback?code=auth-code&state="+state, "", nil, "")
	require.Equal(t, http.StatusFound, rec.Code)

	cb := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(cb, frontendOrigin+"/login?"), cb)
	require.NotEmpty(t, queryParam(t, cb, "token"))
	require.Equal(t, string(domain.RoleParticipant), queryParam(t, cb, "role"))

	// The state token is single use.
	rec = env.do(t, http.MethodGet, "/api/auth/google/callback?code=auth-code&state="+state, "", nil, "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.NotEmpty(t, queryParam(t, rec.Header().Get("Location"), "error"))
}

func TestGoogleOAuthCallbackErrors(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/auth/google/callback?error=access_denied", "", nil, "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "access_denied", queryParam(t, rec.Header().Get("Location"), "error"))

	rec = env.do(t, http.MethodGet, "/api/auth/google/callback", "", nil, "")
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "missing_code_or_state", queryParam(t, rec.Header().Get("Location"), "error"))
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", frontendOrigin)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, frontendOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsExposed(t *testing.T) {
	env := newTestEnv(t)

	// Record at least one request so the counter has a child to scrape.
	rec := env.do(t, http.MethodGet, "/healthz", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/metrics", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "eventflow_http_requests_total")
}

func queryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	i := strings.Index(rawURL, "?")
	require.GreaterOrEqual(t, i, 0, rawURL)
	vals, err := url.ParseQuery(rawURL[i+1:])
	require.NoError(t, err)
	return vals.Get(key)
}
