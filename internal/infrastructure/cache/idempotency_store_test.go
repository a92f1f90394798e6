package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyStores(t *testing.T) {
	client, _ := newMiniredisClient(t)
	stores := map[string]shared.IdempotencyStore{
		"redis":  NewRedisIdempotencyStore(client),
		"memory": NewInMemoryIdempotencyStore(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			processed, err := store.IsProcessed(ctx, "evt-1:shopper")
			require.NoError(t, err)
			assert.False(t, processed)

			created, err := store.MarkProcessed(ctx, "evt-1:shopper", time.Hour)
			require.NoError(t, err)
			assert.True(t, created)

			created, err = store.MarkProcessed(ctx, "evt-1:shopper", time.Hour)
			require.NoError(t, err)
			assert.False(t, created, "second mark reports an existing key")

			processed, err = store.IsProcessed(ctx, "evt-1:shopper")
			require.NoError(t, err)
			assert.True(t, processed)

			processed, err = store.IsProcessed(ctx, "evt-1:seller")
			require.NoError(t, err)
			assert.False(t, processed)
		})
	}
}

func TestRedisIdempotencyStore_Expiry(t *testing.T) {
	client, mr := newMiniredisClient(t)
	store := NewRedisIdempotencyStore(client)
	ctx := context.Background()

	_, err := store.MarkProcessed(ctx, "evt-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("storefront:processed:evt-1"))

	mr.FastForward(2 * time.Minute)
	processed, err := store.IsProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_ConcurrentMark(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	ctx := context.Background()

	const workers = 50
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.MarkProcessed(ctx, "evt-race", time.Hour)
			if err == nil && ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created, "exactly one caller records the key")
}

func TestTTLMap_Sweep(t *testing.T) {
	m := newTTLMap[int]()
	now := time.Now()
	m.now = func() time.Time { return now }

	m.set("short", 1, time.Second)
	m.set("long", 2, time.Hour)
	assert.Equal(t, 2, m.len())

	now = now.Add(time.Minute)
	assert.Equal(t, 1, m.sweep())
	assert.Equal(t, 1, m.len())

	v, ok := m.get("long")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	// writes sweep once the interval has passed
	m.set("short", 1, time.Second)
	now = now.Add(sweepInterval + time.Second)
	m.set("other", 3, time.Hour)
	assert.Equal(t, 2, m.len())
}
