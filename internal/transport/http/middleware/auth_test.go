package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/baechuer/eventflow/internal/infrastructure/security"
	"github.com/baechuer/eventflow/internal/transport/http/response"
)

func authedHandler(t *testing.T, wantID, wantRole string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantID, id)

		role, ok := RoleFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, wantRole, role)

		w.WriteHeader(http.StatusOK)
	})
}

func errCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body response.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error.Code
}

func TestAuthMissingHeader(t *testing.T) {
	signer := security.NewJWTSigner("s", "test")
	mw := Auth(signer, response.WriteError)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	mw(authedHandler(t, "", "")).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "token_missing", errCode(t, rec))
}

func TestAuthMalformedHeader(t *testing.T) {
	signer := security.NewJWTSigner("s", "test")
	mw := Auth(signer, response.WriteError)

	for _, h := range []string{"Basic abc", "Bearer", "Bearer   "} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/x", nil)
		req.Header.Set("Authorization", h)
		mw(authedHandler(t, "", "")).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, h)
		require.Equal(t, "token_invalid", errCode(t, rec), h)
	}
}

func TestAuthExpiredToken(t *testing.T) {
	signer := security.NewJWTSigner("s", "test")
	tok, err := signer.SignAccessToken("u1", "participant", "a@example.com", -time.Minute)
	require.NoError(t, err)

	mw := Auth(signer, response.WriteError)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	mw(authedHandler(t, "", "")).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "token_expired", errCode(t, rec))
}

func TestAuthInjectsClaims(t *testing.T) {
	signer := security.NewJWTSigner("s", "test")
	tok, err := signer.SignAccessToken("u1", "admin", "a@example.com", time.Hour)
	require.NoError(t, err)

	mw := Auth(signer, response.WriteError)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	mw(authedHandler(t, "u1", "admin")).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleAllowsListedRoles(t *testing.T) {
	mw := RequireRole(response.WriteError, "admin")

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req = req.WithContext(WithUser(req.Context(), "u1", "admin"))
	mw(ok).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	mw := RequireRole(response.WriteError, "admin")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req = req.WithContext(WithUser(req.Context(), "u1", "participant"))
	mw(http.NotFoundHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "insufficient_role", errCode(t, rec))
}

func TestRequireRoleWithoutAuthContext(t *testing.T) {
	mw := RequireRole(response.WriteError, "admin")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	mw(http.NotFoundHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIDGeneratedAndEchoed(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = response.RequestIDFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))
	require.NotEmpty(t, seen)
	require.Equal(t, seen, rec.Header().Get(HeaderXRequestID))

	// Client-supplied ids are preserved.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(HeaderXRequestID, "fixed-id")
	h.ServeHTTP(rec, req)
	require.Equal(t, "fixed-id", seen)
}
