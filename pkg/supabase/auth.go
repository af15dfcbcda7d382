package supabase

import (
	"context"
	"net/http"
	"time"
)

// User is the signed-in identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the provider's authentication session. The console only keeps
// a cached copy of it.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at"`
	User         User   `json:"user"`
}

// Expired reports whether the access token is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt > 0 && now.Unix() >= s.ExpiresAt
}

// AuthClient calls the identity provider.
type AuthClient struct {
	c   *Client
	now func() time.Time
}

// NewAuthClient creates an AuthClient over c.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c, now: time.Now}
}

// SignInWithPassword exchanges email and password for a session.
func (a *AuthClient) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{"email": email, "password": password}
	var s Session
	if err := a.c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", body, &s); err != nil {
		return nil, err
	}
	a.fillExpiry(&s)
	return &s, nil
}

// RefreshSession exchanges a refresh token for a new session.
func (a *AuthClient) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body := map[string]string{"refresh_token": refreshToken}
	var s Session
	if err := a.c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", body, &s); err != nil {
		return nil, err
	}
	a.fillExpiry(&s)
	return &s, nil
}

// SignOut revokes the session owning accessToken.
func (a *AuthClient) SignOut(ctx context.Context, accessToken string) error {
	return a.c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil, nil)
}

func (a *AuthClient) fillExpiry(s *Session) {
	if s.ExpiresAt == 0 && s.ExpiresIn > 0 {
		s.ExpiresAt = a.now().Add(time.Duration(s.ExpiresIn) * time.Second).Unix()
	}
}
