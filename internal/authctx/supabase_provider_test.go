package authctx

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pkgerrors "github.com/truongminh05/VCI-Web/pkg/errors"
	"github.com/truongminh05/VCI-Web/pkg/jwt"
	pkgredis "github.com/truongminh05/VCI-Web/pkg/redis"
	"github.com/truongminh05/VCI-Web/pkg/supabase"
)

// ── fakes ──

type fakeAuth struct {
	refreshErr error
	signOutErr error
	refreshed  int
	signedOut  string
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, _ string) (*supabase.Session, error) {
	return &supabase.Session{AccessToken: "valid", RefreshToken: "rt", User: supabase.User{ID: "u-1", Email: email}}, nil
}

func (f *fakeAuth) RefreshSession(_ context.Context, rt string) (*supabase.Session, error) {
	f.refreshed++
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return &supabase.Session{AccessToken: "valid", RefreshToken: rt + "2", User: supabase.User{ID: "u-1"}}, nil
}

func (f *fakeAuth) SignOut(_ context.Context, accessToken string) error {
	f.signedOut = accessToken
	return f.signOutErr
}

type fakeTokens struct{}

func (fakeTokens) ParseToken(tok string) (*jwt.Claims, error) {
	switch tok {
	case "valid":
		return &jwt.Claims{}, nil
	case "expired":
		return nil, jwt.ErrTokenExpired
	}
	return nil, jwt.ErrTokenInvalid
}

func seed(t *testing.T, cache SessionCache, sid string, s *supabase.Session) {
	t.Helper()
	raw, _ := json.Marshal(s)
	if err := cache.Save(context.Background(), sid, raw, time.Hour); err != nil {
		t.Fatalf("seed: %v", err)
	}
}

func recordEvents(p *SupabaseProvider) *[]Event {
	var evs []Event
	p.Subscribe(func(_ context.Context, ev Event, _ *Session) { evs = append(evs, ev) })
	return &evs
}

// ── tests ──

func TestSupabaseProvider_SignInCachesSession(t *testing.T) {
	cache := NewMemoryCache()
	p := NewSupabaseProvider("sid", &fakeAuth{}, cache, fakeTokens{}, time.Hour)
	evs := recordEvents(p)

	if _, err := p.SignIn(context.Background(), "admin@vci.edu.vn", "secret1"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	s, err := p.GetSession(context.Background())
	if err != nil || s == nil || s.User.ID != "u-1" {
		t.Fatalf("GetSession = %+v, %v", s, err)
	}
	if len(*evs) != 1 || (*evs)[0] != EventSessionEstablished {
		t.Errorf("unexpected events %v", *evs)
	}
}

func TestSupabaseProvider_GetSessionEmpty(t *testing.T) {
	p := NewSupabaseProvider("sid", &fakeAuth{}, NewMemoryCache(), fakeTokens{}, time.Hour)
	s, err := p.GetSession(context.Background())
	if err != nil || s != nil {
		t.Errorf("expected no session, got %+v, %v", s, err)
	}
}

func TestSupabaseProvider_RefreshesExpiredToken(t *testing.T) {
	cache := NewMemoryCache()
	auth := &fakeAuth{}
	seed(t, cache, "sid", &supabase.Session{AccessToken: "expired", RefreshToken: "rt", User: supabase.User{ID: "u-1"}})
	p := NewSupabaseProvider("sid", auth, cache, fakeTokens{}, time.Hour)
	evs := recordEvents(p)

	s, err := p.GetSession(context.Background())
	if err != nil || s == nil || s.AccessToken != "valid" {
		t.Fatalf("GetSession = %+v, %v", s, err)
	}
	if auth.refreshed != 1 {
		t.Errorf("expected one refresh, got %d", auth.refreshed)
	}
	if len(*evs) != 1 || (*evs)[0] != EventSessionRefreshed {
		t.Errorf("unexpected events %v", *evs)
	}
}

func TestSupabaseProvider_FailedRefreshClears(t *testing.T) {
	cache := NewMemoryCache()
	seed(t, cache, "sid", &supabase.Session{AccessToken: "expired", RefreshToken: "rt"})
	p := NewSupabaseProvider("sid", &fakeAuth{refreshErr: pkgerrors.FromResponse(400, "Invalid Refresh Token")}, cache, fakeTokens{}, time.Hour)
	evs := recordEvents(p)

	s, err := p.GetSession(context.Background())
	if err != nil || s != nil {
		t.Fatalf("expected cleared session, got %+v, %v", s, err)
	}
	if _, err := cache.Load(context.Background(), "sid"); !errors.Is(err, pkgredis.ErrMiss) {
		t.Error("cache entry should be deleted")
	}
	if len(*evs) != 1 || (*evs)[0] != EventSessionCleared {
		t.Errorf("unexpected events %v", *evs)
	}
}

func TestSupabaseProvider_RefreshNetworkErrorKeepsSession(t *testing.T) {
	cache := NewMemoryCache()
	seed(t, cache, "sid", &supabase.Session{AccessToken: "expired", RefreshToken: "rt"})
	p := NewSupabaseProvider("sid", &fakeAuth{refreshErr: pkgerrors.Network(errors.New("dial tcp"))}, cache, fakeTokens{}, time.Hour)

	if _, err := p.GetSession(context.Background()); err == nil {
		t.Fatal("expected network error")
	}
	if _, err := cache.Load(context.Background(), "sid"); err != nil {
		t.Error("cache entry should survive a network failure")
	}
}

func TestSupabaseProvider_SignOut(t *testing.T) {
	cache := NewMemoryCache()
	auth := &fakeAuth{}
	seed(t, cache, "sid", &supabase.Session{AccessToken: "valid"})
	p := NewSupabaseProvider("sid", auth, cache, fakeTokens{}, time.Hour)
	evs := recordEvents(p)

	if err := p.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if auth.signedOut != "valid" {
		t.Errorf("expected logout with cached token, got %q", auth.signedOut)
	}
	if len(*evs) != 1 || (*evs)[0] != EventSessionCleared {
		t.Errorf("unexpected events %v", *evs)
	}
}

func TestSupabaseProvider_SignOutErrorKeepsSession(t *testing.T) {
	cache := NewMemoryCache()
	seed(t, cache, "sid", &supabase.Session{AccessToken: "valid"})
	p := NewSupabaseProvider("sid", &fakeAuth{signOutErr: pkgerrors.Network(errors.New("timeout"))}, cache, fakeTokens{}, time.Hour)

	if err := p.SignOut(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if _, err := cache.Load(context.Background(), "sid"); err != nil {
		t.Error("session should be kept when logout fails")
	}
}

func TestSupabaseProvider_SignOutRevokedTokenSucceeds(t *testing.T) {
	cache := NewMemoryCache()
	seed(t, cache, "sid", &supabase.Session{AccessToken: "valid"})
	p := NewSupabaseProvider("sid", &fakeAuth{signOutErr: pkgerrors.FromResponse(401, "invalid JWT")}, cache, fakeTokens{}, time.Hour)

	if err := p.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	m := NewMemoryCache()
	now := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return now }

	_ = m.Save(context.Background(), "sid", []byte("x"), time.Minute)
	if _, err := m.Load(context.Background(), "sid"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := m.Load(context.Background(), "sid"); !errors.Is(err, pkgredis.ErrMiss) {
		t.Errorf("expected miss after expiry, got %v", err)
	}
}
