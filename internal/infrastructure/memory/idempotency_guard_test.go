package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimRelease(t *testing.T) {
	ctx := context.Background()
	g := NewIdempotencyGuard(0)

	ok, err := g.Claim(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = g.Claim(ctx, "k")
	assert.False(t, ok)

	require.NoError(t, g.Release(ctx, "k"))
	ok, _ = g.Claim(ctx, "k")
	assert.True(t, ok)
}

func TestClaim_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	g := NewIdempotencyGuard(time.Minute)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return now }

	ok, _ := g.Claim(ctx, "k")
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, _ = g.Claim(ctx, "k")
	assert.True(t, ok)
	assert.Len(t, g.keys, 1)
}

func TestClaim_Concurrent(t *testing.T) {
	g := NewIdempotencyGuard(0)
	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := g.Claim(context.Background(), "same"); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}
