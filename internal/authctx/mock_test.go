package authctx

import (
	"context"
	"errors"
	"sync"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// ── Mock Provider ──

type mockProvider struct {
	mu         sync.Mutex
	session    *Session
	getErr     error
	signOutErr error
	subs       map[int]Listener
	next       int
}

func newMockProvider(s *Session) *mockProvider {
	return &mockProvider{session: s, subs: make(map[int]Listener)}
}

func (m *mockProvider) GetSession(_ context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.session, nil
}

func (m *mockProvider) Subscribe(fn Listener) func() {
	m.mu.Lock()
	id := m.next
	m.next++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *mockProvider) subscribers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.subs)
}

func (m *mockProvider) emit(ev Event, s *Session) {
	m.mu.Lock()
	if ev == EventSessionCleared {
		m.session = nil
	} else {
		m.session = s
	}
	fns := make([]Listener, 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.Unlock()
	for _, fn := range fns {
		fn(context.Background(), ev, s)
	}
}

func (m *mockProvider) SignIn(_ context.Context, email, password string) (*Session, error) {
	if password != "secret1" {
		return nil, errors.New("Invalid login credentials")
	}
	s := &Session{AccessToken: "at", User: User{ID: "u-admin", Email: email}}
	m.emit(EventSessionEstablished, s)
	return s, nil
}

func (m *mockProvider) SignOut(_ context.Context) error {
	if m.signOutErr != nil {
		return m.signOutErr
	}
	m.emit(EventSessionCleared, nil)
	return nil
}

// ── Mock ProfileLoader ──

type mockProfiles struct {
	mu       sync.Mutex
	profiles map[string]*model.Profile
	err      error
	calls    int
}

func newMockProfiles() *mockProfiles {
	return &mockProfiles{profiles: map[string]*model.Profile{
		"u-admin":   {UserID: "u-admin", Role: model.RoleAdmin},
		"u-student": {UserID: "u-student", Role: model.RoleStudent},
	}}
}

func (m *mockProfiles) FindByUserID(_ context.Context, userID string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProfiles) setRole(userID string, role model.Role) {
	m.mu.Lock()
	m.profiles[userID].Role = role
	m.mu.Unlock()
}
