package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/truongminh05/VCI-Web/config"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims are the fields of an access token issued by the identity provider.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"` // provider role, e.g. "authenticated"
	jwtv5.RegisteredClaims
}

// UserID returns the identity id carried in the subject.
func (c *Claims) UserID() string { return c.Subject }

// Manager verifies provider access tokens with the project's shared secret.
type Manager struct {
	secret []byte
	leeway time.Duration
}

// NewManager creates a Manager from the backend settings.
func NewManager(cfg *config.SupabaseConfig) *Manager {
	return &Manager{secret: []byte(cfg.JWTSecret), leeway: 30 * time.Second}
}

// ParseToken validates tokenString and returns its claims.
// ErrTokenExpired is returned for a correctly signed token past its expiry
// (minus leeway), so callers can refresh instead of dropping the session.
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwtv5.ParseWithClaims(tokenString, &Claims{}, func(t *jwtv5.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwtv5.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenInvalid
	}

	// refresh a little early so a token never expires mid-request
	if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < m.leeway {
		return nil, ErrTokenExpired
	}

	return claims, nil
}
