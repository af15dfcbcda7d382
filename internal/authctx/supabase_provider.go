package authctx

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
	"github.com/truongminh05/VCI-Web/pkg/jwt"
	pkgredis "github.com/truongminh05/VCI-Web/pkg/redis"
	"github.com/truongminh05/VCI-Web/pkg/supabase"
)

// AuthAPI is the subset of the identity client the provider needs.
type AuthAPI interface {
	SignInWithPassword(ctx context.Context, email, password string) (*supabase.Session, error)
	RefreshSession(ctx context.Context, refreshToken string) (*supabase.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// TokenVerifier checks provider access tokens.
type TokenVerifier interface {
	ParseToken(token string) (*jwt.Claims, error)
}

// SupabaseProvider is the Provider of one console session, backed by the
// hosted identity service and a SessionCache.
type SupabaseProvider struct {
	sid    string
	auth   AuthAPI
	cache  SessionCache
	tokens TokenVerifier
	ttl    time.Duration

	mu     sync.Mutex
	nextID int
	subs   map[int]Listener
}

// NewSupabaseProvider creates the provider for console session sid.
func NewSupabaseProvider(sid string, auth AuthAPI, cache SessionCache, tokens TokenVerifier, ttl time.Duration) *SupabaseProvider {
	return &SupabaseProvider{
		sid:    sid,
		auth:   auth,
		cache:  cache,
		tokens: tokens,
		ttl:    ttl,
		subs:   make(map[int]Listener),
	}
}

func (p *SupabaseProvider) Subscribe(fn Listener) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

func (p *SupabaseProvider) emit(ctx context.Context, ev Event, s *Session) {
	p.mu.Lock()
	subs := make([]Listener, 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()
	for _, fn := range subs {
		fn(ctx, ev, s)
	}
}

// GetSession reads the cached session and refreshes it when the access
// token has expired. A failed refresh or a bad token ends the session.
func (p *SupabaseProvider) GetSession(ctx context.Context) (*Session, error) {
	cached, err := p.load(ctx)
	if err != nil || cached == nil {
		return nil, err
	}

	_, err = p.tokens.ParseToken(cached.AccessToken)
	switch {
	case err == nil:
		return toSession(cached), nil
	case errors.Is(err, jwt.ErrTokenExpired) && cached.RefreshToken != "":
		fresh, rerr := p.auth.RefreshSession(ctx, cached.RefreshToken)
		if rerr != nil {
			if pkgerrors.KindOf(rerr) == pkgerrors.KindNetwork {
				return nil, rerr
			}
			p.drop(ctx)
			return nil, nil
		}
		if err := p.store(ctx, fresh); err != nil {
			return nil, err
		}
		s := toSession(fresh)
		p.emit(ctx, EventSessionRefreshed, s)
		return s, nil
	default:
		p.drop(ctx)
		return nil, nil
	}
}

func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	fresh, err := p.auth.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := p.store(ctx, fresh); err != nil {
		return nil, err
	}
	s := toSession(fresh)
	p.emit(ctx, EventSessionEstablished, s)
	return s, nil
}

// SignOut revokes the session at the provider, then forgets it. A token the
// provider no longer accepts counts as signed out.
func (p *SupabaseProvider) SignOut(ctx context.Context) error {
	cached, err := p.load(ctx)
	if err != nil {
		return err
	}
	if cached != nil {
		if err := p.auth.SignOut(ctx, cached.AccessToken); err != nil && pkgerrors.KindOf(err) != pkgerrors.KindUnauthenticated {
			return err
		}
	}
	p.drop(ctx)
	return nil
}

func (p *SupabaseProvider) load(ctx context.Context) (*supabase.Session, error) {
	raw, err := p.cache.Load(ctx, p.sid)
	if errors.Is(err, pkgredis.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var s supabase.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		_ = p.cache.Delete(ctx, p.sid)
		return nil, nil
	}
	return &s, nil
}

func (p *SupabaseProvider) store(ctx context.Context, s *supabase.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return p.cache.Save(ctx, p.sid, raw, p.ttl)
}

func (p *SupabaseProvider) drop(ctx context.Context) {
	_ = p.cache.Delete(ctx, p.sid)
	p.emit(ctx, EventSessionCleared, nil)
}

func toSession(s *supabase.Session) *Session {
	return &Session{
		AccessToken: s.AccessToken,
		User:        User{ID: s.User.ID, Email: s.User.Email},
	}
}
