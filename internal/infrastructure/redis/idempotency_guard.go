// Package redis holds the Redis-backed adapters.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/hotel-warehouse/internal/application/inventory"
)

const (
	idempotencyKeyPrefix = "warehouse:idem:"
	idempotencyKeyTTL    = 24 * time.Hour
)

var _ inventory.IdempotencyGuard = (*IdempotencyGuard)(nil)

// IdempotencyGuard claims request keys with SET NX so a retried release is applied once.
type IdempotencyGuard struct {
	client *goredis.Client
}

// NewIdempotencyGuard wraps an existing client.
func NewIdempotencyGuard(client *goredis.Client) *IdempotencyGuard {
	return &IdempotencyGuard{client: client}
}

// NewClient connects and pings the server.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Claim reports true the first time key is seen within the TTL.
func (g *IdempotencyGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, idempotencyKeyPrefix+key, 1, idempotencyKeyTTL).Result()
	if err != nil {
		return false, fmt.Errorf("claim idempotency key: %w", err)
	}
	return ok, nil
}

// Release forgets key so a failed request can be retried.
func (g *IdempotencyGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, idempotencyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("release idempotency key: %w", err)
	}
	return nil
}
