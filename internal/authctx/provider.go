// Package authctx keeps the signed-in identity, its profile and the derived
// role of each console session in sync with the identity provider.
package authctx

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
)

// Event names a session state transition.
type Event int

const (
	EventSessionEstablished Event = iota + 1
	EventSessionRefreshed
	EventSessionCleared
	EventRoleChanged
)

func (e Event) String() string {
	switch e {
	case EventSessionEstablished:
		return "session_established"
	case EventSessionRefreshed:
		return "session_refreshed"
	case EventSessionCleared:
		return "session_cleared"
	case EventRoleChanged:
		return "role_changed"
	}
	return "unknown"
}

// User is the signed-in identity.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Session is the console's view of a provider session.
type Session struct {
	AccessToken string
	User        User
}

// Listener receives provider events. s is nil for EventSessionCleared.
type Listener func(ctx context.Context, ev Event, s *Session)

// Provider is the identity provider seen from one console session.
type Provider interface {
	// GetSession returns the current session, or nil when signed out.
	GetSession(ctx context.Context) (*Session, error)
	Subscribe(fn Listener) (unsubscribe func())
	SignIn(ctx context.Context, email, password string) (*Session, error)
	SignOut(ctx context.Context) error
}

// ProfileLoader fetches the profile of an identity. A missing profile is
// (nil, nil).
type ProfileLoader interface {
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
}

// RepoProfileLoader adapts a ProfileRepository.
type RepoProfileLoader struct {
	Repo repository.ProfileRepository
}

func (l RepoProfileLoader) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	p, err := l.Repo.GetByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return p, err
}
