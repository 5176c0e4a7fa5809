package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/entitlements-cli/internal/ports"
)

type entry struct {
	value    []byte
	storedAt time.Time
}

// Cache keeps responses for the lifetime of the process.
type Cache struct {
	ttl   time.Duration
	clock ports.Clock

	mu      sync.RWMutex
	entries map[string]entry
}

var _ ports.ResponseCache = (*Cache)(nil)

// New returns an empty cache. A non-positive ttl keeps entries until Clear.
func New(ttl time.Duration, clock ports.Clock) *Cache {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &Cache{ttl: ttl, clock: clock, entries: map[string]entry{}}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.expired(e) {
		return nil, false, nil
	}

	return append([]byte(nil), e.value...), true, nil
}

func (c *Cache) Put(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: append([]byte(nil), value...), storedAt: c.clock.Now()}
	return nil
}

func (c *Cache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = map[string]entry{}
	return nil
}

func (c *Cache) expired(e entry) bool {
	return c.ttl > 0 && c.clock.Now().Sub(e.storedAt) >= c.ttl
}
