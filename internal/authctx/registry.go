package authctx

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	pkgredis "github.com/truongminh05/VCI-Web/pkg/redis"
)

// ProviderFactory builds the Provider of console session sid.
type ProviderFactory func(sid string) Provider

// Registry maps console session ids to their Context.
type Registry struct {
	newProvider ProviderFactory
	profiles    ProfileLoader
	cache       SessionCache
	logger      *zap.Logger
	initTimeout time.Duration

	mu       sync.Mutex
	contexts map[string]*Context
}

// NewRegistry creates an empty Registry.
func NewRegistry(newProvider ProviderFactory, profiles ProfileLoader, logger *zap.Logger) *Registry {
	return &Registry{
		newProvider: newProvider,
		profiles:    profiles,
		logger:      logger,
		initTimeout: 15 * time.Second,
		contexts:    make(map[string]*Context),
	}
}

// WithCache makes Get refuse session ids that have no cached provider
// session, so unknown cookies never create a Context.
func (r *Registry) WithCache(cache SessionCache) *Registry {
	r.cache = cache
	return r
}

// SignIn authenticates with the provider under a new console session id
// and returns the initialised Context.
func (r *Registry) SignIn(ctx context.Context, email, password string) (string, *Context, error) {
	sid := uuid.NewString()
	p := r.newProvider(sid)
	if _, err := p.SignIn(ctx, email, password); err != nil {
		return "", nil, err
	}

	c := r.track(sid, NewContext(p, r.profiles, r.logger.With(zap.String("sid", sid))))
	c.Init(ctx)
	return sid, c, nil
}

// Get returns the Context of sid, creating it on first use. A new Context
// initialises in the background and starts in the loading state. With a
// cache set, an id without a cached session yields nil.
func (r *Registry) Get(ctx context.Context, sid string) *Context {
	if c, ok := r.Lookup(sid); ok {
		return c
	}
	if r.cache != nil {
		// other cache errors fall through; Init logs them
		if _, err := r.cache.Load(ctx, sid); errors.Is(err, pkgredis.ErrMiss) {
			return nil
		}
	}

	c := NewContext(r.newProvider(sid), r.profiles, r.logger.With(zap.String("sid", sid)))
	c = r.track(sid, c)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.initTimeout)
		defer cancel()
		c.Init(ctx)
	}()
	return c
}

// Lookup returns the Context of sid without creating one.
func (r *Registry) Lookup(sid string) (*Context, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contexts[sid]
	return c, ok
}

// track registers c under sid unless another goroutine won the race, in
// which case the existing Context is returned.
func (r *Registry) track(sid string, c *Context) *Context {
	r.mu.Lock()
	if existing, ok := r.contexts[sid]; ok {
		r.mu.Unlock()
		return existing
	}
	r.contexts[sid] = c
	r.mu.Unlock()

	c.OnChange(func(ev Event, s State) {
		// forget sessions that ended or never existed
		if ev == EventSessionCleared || (ev == 0 && s.User == nil) {
			r.evict(sid, c)
		}
	})
	return c
}

func (r *Registry) evict(sid string, c *Context) {
	r.mu.Lock()
	if r.contexts[sid] == c {
		delete(r.contexts, sid)
	}
	r.mu.Unlock()
	c.Close()
}

// Sweep re-syncs every tracked Context with its provider, evicting those
// whose session has ended. It returns the number evicted.
func (r *Registry) Sweep(ctx context.Context) int {
	r.mu.Lock()
	all := make([]*Context, 0, len(r.contexts))
	for _, c := range r.contexts {
		all = append(all, c)
	}
	before := len(r.contexts)
	r.mu.Unlock()

	for _, c := range all {
		if c.Snapshot().Loading {
			continue
		}
		if err := c.Sync(ctx); err != nil {
			r.logger.Warn("session sweep failed", zap.Error(err))
		}
	}
	return before - r.Len()
}

// Len returns the number of tracked sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.contexts)
}

// Close detaches every Context.
func (r *Registry) Close() {
	r.mu.Lock()
	all := r.contexts
	r.contexts = make(map[string]*Context)
	r.mu.Unlock()
	for _, c := range all {
		c.Close()
	}
}
