package authctx

import (
	"context"
	"sync"
	"time"

	pkgredis "github.com/truongminh05/VCI-Web/pkg/redis"
)

// SessionCache stores the cached provider session of each console session.
// Load returns pkgredis.ErrMiss when nothing is stored.
type SessionCache interface {
	Save(ctx context.Context, sid string, payload []byte, ttl time.Duration) error
	Load(ctx context.Context, sid string) ([]byte, error)
	Delete(ctx context.Context, sid string) error
}

var _ SessionCache = (*pkgredis.Client)(nil)

type memoryEntry struct {
	payload []byte
	expires time.Time
}

// MemoryCache is the in-process SessionCache used when Redis is unavailable.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (m *MemoryCache) Save(_ context.Context, sid string, payload []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.entries[sid] = memoryEntry{payload: cp, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryCache) Load(_ context.Context, sid string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[sid]
	if !ok {
		return nil, pkgredis.ErrMiss
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, sid)
		return nil, pkgredis.ErrMiss
	}
	return e.payload, nil
}

func (m *MemoryCache) Delete(_ context.Context, sid string) error {
	m.mu.Lock()
	delete(m.entries, sid)
	m.mu.Unlock()
	return nil
}
