package authctx

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/truongminh05/VCI-Web/internal/model"
)

// ErrNoSession is returned by operations that need a signed-in user.
var ErrNoSession = errors.New("no active session")

// State is a consistent snapshot of a console session.
type State struct {
	Loading bool
	User    *User
	Profile *model.Profile
	// Role is empty until a profile has loaded.
	Role model.Role
}

// ChangeFunc observes state transitions. It runs outside the lock.
type ChangeFunc func(ev Event, s State)

// Context owns the auth state of one console session.
//
// Lifecycle: NewContext, Init, provider events, Close.
type Context struct {
	provider Provider
	profiles ProfileLoader
	logger   *zap.Logger

	mu          sync.RWMutex
	state       State
	listeners   []ChangeFunc
	unsubscribe func()

	ready     chan struct{}
	readyOnce sync.Once
}

// NewContext creates a Context in the loading state.
func NewContext(provider Provider, profiles ProfileLoader, logger *zap.Logger) *Context {
	return &Context{
		provider: provider,
		profiles: profiles,
		logger:   logger,
		state:    State{Loading: true},
		ready:    make(chan struct{}),
	}
}

// Init subscribes to provider events, then loads the current session and
// its profile. Loading turns false once both steps finished; failures are
// logged only.
func (c *Context) Init(ctx context.Context) {
	unsub := c.provider.Subscribe(c.handleEvent)
	c.mu.Lock()
	c.unsubscribe = unsub
	c.mu.Unlock()

	defer c.markReady()

	s, err := c.provider.GetSession(ctx)
	if err != nil {
		c.logger.Warn("load session failed", zap.Error(err))
		return
	}
	if s == nil {
		return
	}

	c.setUser(&s.User)
	if err := c.loadProfile(ctx, s.User.ID); err != nil {
		c.logger.Warn("load profile failed", zap.String("user_id", s.User.ID), zap.Error(err))
	}
}

func (c *Context) markReady() {
	c.readyOnce.Do(func() {
		c.mu.Lock()
		c.state.Loading = false
		snap := c.snapshotLocked()
		c.mu.Unlock()
		close(c.ready)
		c.notify(0, snap)
	})
}

// WaitReady blocks until Init has finished or ctx is done.
func (c *Context) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state.
func (c *Context) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Context) snapshotLocked() State {
	s := State{Loading: c.state.Loading, Role: c.state.Role}
	if c.state.User != nil {
		u := *c.state.User
		s.User = &u
	}
	if c.state.Profile != nil {
		p := *c.state.Profile
		s.Profile = &p
	}
	return s
}

// OnChange registers fn for every transition, including EventRoleChanged.
// A zero Event is delivered once when loading finishes.
func (c *Context) OnChange(fn ChangeFunc) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

func (c *Context) notify(ev Event, s State) {
	c.mu.RLock()
	ls := make([]ChangeFunc, len(c.listeners))
	copy(ls, c.listeners)
	c.mu.RUnlock()
	for _, fn := range ls {
		fn(ev, s)
	}
}

func (c *Context) handleEvent(ctx context.Context, ev Event, s *Session) {
	switch ev {
	case EventSessionCleared:
		c.clear()
	case EventSessionEstablished, EventSessionRefreshed:
		if s == nil {
			return
		}
		c.setUser(&s.User)
		c.notify(ev, c.Snapshot())
		if err := c.loadProfile(ctx, s.User.ID); err != nil {
			c.logger.Warn("reload profile failed", zap.String("event", ev.String()), zap.Error(err))
		}
	}
}

func (c *Context) setUser(u *User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.User != nil && c.state.User.ID != u.ID {
		c.state.Profile = nil
		c.state.Role = ""
	}
	cp := *u
	c.state.User = &cp
}

// clear drops user, profile and role under one lock.
func (c *Context) clear() {
	c.mu.Lock()
	hadUser := c.state.User != nil
	roleChanged := c.state.Role != ""
	c.state.User = nil
	c.state.Profile = nil
	c.state.Role = ""
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if !hadUser {
		return
	}
	c.notify(EventSessionCleared, snap)
	if roleChanged {
		c.notify(EventRoleChanged, snap)
	}
}

// loadProfile fetches and applies the profile of userID. A failed or
// empty fetch clears profile and role. The result is dropped if the user
// changed or signed out meanwhile.
func (c *Context) loadProfile(ctx context.Context, userID string) error {
	p, err := c.profiles.FindByUserID(ctx, userID)
	if err != nil {
		p = nil
	}
	c.applyProfile(userID, p)
	return err
}

func (c *Context) applyProfile(userID string, p *model.Profile) {
	c.mu.Lock()
	if c.state.User == nil || c.state.User.ID != userID {
		c.mu.Unlock()
		return
	}
	prev := c.state.Role
	if p == nil {
		c.state.Profile = nil
		c.state.Role = ""
	} else {
		cp := *p
		c.state.Profile = &cp
		c.state.Role = p.Role
	}
	changed := prev != c.state.Role
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if changed {
		c.notify(EventRoleChanged, snap)
	}
}

// RefreshProfile reloads the profile of the signed-in user. Only a
// loaded profile is applied; on error or a missing row the current
// profile and role stay.
func (c *Context) RefreshProfile(ctx context.Context) error {
	c.mu.RLock()
	u := c.state.User
	c.mu.RUnlock()
	if u == nil {
		return ErrNoSession
	}
	p, err := c.profiles.FindByUserID(ctx, u.ID)
	if err != nil {
		return err
	}
	if p != nil {
		c.applyProfile(u.ID, p)
	}
	return nil
}

// Sync re-reads the provider session so the state follows the provider:
// a session the provider no longer has clears the state, a different
// user is loaded afresh. Provider errors leave the state untouched.
func (c *Context) Sync(ctx context.Context) error {
	s, err := c.provider.GetSession(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		c.clear()
		return nil
	}

	c.mu.RLock()
	u := c.state.User
	c.mu.RUnlock()
	if u != nil && u.ID == s.User.ID {
		return nil
	}
	c.setUser(&s.User)
	return c.loadProfile(ctx, s.User.ID)
}

// AccessToken returns the provider access token of the current session,
// refreshed when needed.
func (c *Context) AccessToken(ctx context.Context) (string, error) {
	s, err := c.provider.GetSession(ctx)
	if err != nil {
		return "", err
	}
	if s == nil {
		c.clear()
		return "", ErrNoSession
	}
	return s.AccessToken, nil
}

// SignOut signs out at the provider and clears local state once it
// confirmed. On error the state is kept.
func (c *Context) SignOut(ctx context.Context) error {
	if err := c.provider.SignOut(ctx); err != nil {
		return err
	}
	c.clear()
	return nil
}

// Close detaches from the provider.
func (c *Context) Close() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}
