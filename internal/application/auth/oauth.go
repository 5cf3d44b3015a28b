package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/baechuer/eventflow/internal/domain"
	"github.com/baechuer/eventflow/internal/infrastructure/oauth"
)

// OAuthProvider defines the methods required from an OAuth provider (Google).
type OAuthProvider interface {
	IsConfigured() bool
	AuthURL(state, codeChallenge string) string
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*oauth.TokenResponse, error)
	GetUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error)
}

// OAuthStateData is the per-flow state held between start and callback.
type OAuthStateData struct {
	CodeVerifier string
}

// OAuthStateStore holds one-time OAuth state tokens (anti-replay + PKCE).
type OAuthStateStore interface {
	Create(ctx context.Context, data OAuthStateData) (token string, err error)
	Consume(ctx context.Context, token string) (OAuthStateData, error)
}

type OAuthDeps struct {
	Google     OAuthProvider
	StateStore OAuthStateStore
}

// OAuthStart generates state + PKCE and returns the Google authorization URL.
func (s *Service) OAuthStart(ctx context.Context, deps OAuthDeps) (string, error) {
	if !deps.Google.IsConfigured() {
		return "", domain.New(domain.KindValidation, "oauth_not_configured", "google oauth not configured")
	}

	verifier, challenge, err := oauth.GeneratePKCE()
	if err != nil {
		return "", fmt.Errorf("failed to generate PKCE: %w", err)
	}

	stateToken, err := deps.StateStore.Create(ctx, OAuthStateData{CodeVerifier: verifier})
	if err != nil {
		return "", fmt.Errorf("failed to create oauth state: %w", err)
	}

	return deps.Google.AuthURL(stateToken, challenge), nil
}

type OAuthCallbackResult struct {
	User      domain.User
	Tokens    AuthTokens
	IsNewUser bool
}

// OAuthCallback exchanges the code, trusts Google's confirmed profile and
// finds-or-creates a participant. Idempotent on email: a second login with
// the same Google account lands on the existing user.
func (s *Service) OAuthCallback(ctx context.Context, stateToken, code string, deps OAuthDeps) (OAuthCallbackResult, error) {
	// Consume state (one-time use, prevents replay)
	state, err := deps.StateStore.Consume(ctx, stateToken)
	if err != nil {
		return OAuthCallbackResult{}, domain.New(domain.KindAuth, "invalid_oauth_state", "invalid or expired oauth state")
	}

	tokenResp, err := deps.Google.ExchangeCode(ctx, code, state.CodeVerifier)
	if err != nil {
		return OAuthCallbackResult{}, fmt.Errorf("failed to exchange code: %w", err)
	}
	info, err := deps.Google.GetUserInfo(ctx, tokenResp.AccessToken)
	if err != nil {
		return OAuthCallbackResult{}, fmt.Errorf("failed to get user info: %w", err)
	}

	u, isNew, err := s.findOrCreateGoogleUser(ctx, info)
	if err != nil {
		return OAuthCallbackResult{}, err
	}

	toks, err := s.issueToken(u)
	if err != nil {
		return OAuthCallbackResult{}, err
	}

	s.audit("oauth_login", map[string]string{"user_id": u.ID, "new_user": fmt.Sprintf("%t", isNew)})

	return OAuthCallbackResult{User: u, Tokens: toks, IsNewUser: isNew}, nil
}

func (s *Service) findOrCreateGoogleUser(ctx context.Context, info *oauth.UserInfo) (domain.User, bool, error) {
	email := strings.TrimSpace(strings.ToLower(info.Email))
	if email == "" {
		return domain.User{}, false, domain.ErrInvalidField("email", "missing in google profile")
	}

	if u, err := s.users.GetByEmail(ctx, email); err == nil {
		return u, false, nil
	}

	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		FirstName:    info.GivenName,
		LastName:     info.FamilyName,
		Role:         string(domain.RoleParticipant),
		ProfileImage: info.Picture,
		Verified:     true, // Google confirmed the address
		GoogleID:     info.Sub,
	}
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.User{}, false, err
	}
	return created, true, nil
}
