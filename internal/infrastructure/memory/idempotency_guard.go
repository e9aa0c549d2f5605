// Package memory holds in-process adapters used when no external service is configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
)

const defaultKeyTTL = 24 * time.Hour

var _ inventory.IdempotencyGuard = (*IdempotencyGuard)(nil)

// IdempotencyGuard is the single-process fallback for the Redis guard.
type IdempotencyGuard struct {
	mu   sync.Mutex
	keys map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewIdempotencyGuard builds an empty guard. ttl <= 0 uses 24 hours.
func NewIdempotencyGuard(ttl time.Duration) *IdempotencyGuard {
	if ttl <= 0 {
		ttl = defaultKeyTTL
	}
	return &IdempotencyGuard{keys: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

// Claim reports true the first time key is seen within the TTL. Expired keys are swept lazily.
func (g *IdempotencyGuard) Claim(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.keys {
		if now.After(exp) {
			delete(g.keys, k)
		}
	}
	if _, taken := g.keys[key]; taken {
		return false, nil
	}
	g.keys[key] = now.Add(g.ttl)
	return true, nil
}

// Release forgets key.
func (g *IdempotencyGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.keys, key)
	g.mu.Unlock()
	return nil
}
