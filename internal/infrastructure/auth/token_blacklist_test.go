package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisBlacklist(t *testing.T) (*auth.RedisTokenBlacklist, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return auth.NewRedisTokenBlacklist(client), mr
}

func TestTokenBlacklist_Revocation(t *testing.T) {
	redisBlacklist, _ := newRedisBlacklist(t)
	implementations := map[string]auth.TokenBlacklist{
		"memory": auth.NewInMemoryTokenBlacklist(),
		"redis":  redisBlacklist,
	}

	for name, blacklist := range implementations {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Hour))

			revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
			require.NoError(t, err)
			assert.True(t, revoked)

			revoked, err = blacklist.IsBlacklisted(ctx, "jti-2")
			require.NoError(t, err)
			assert.False(t, revoked)

			require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-expired", 0))
			revoked, err = blacklist.IsBlacklisted(ctx, "jti-expired")
			require.NoError(t, err)
			assert.False(t, revoked, "a zero ttl token is already expired")
		})
	}
}

func TestTokenBlacklist_UserInvalidation(t *testing.T) {
	redisBlacklist, _ := newRedisBlacklist(t)
	implementations := map[string]auth.TokenBlacklist{
		"memory": auth.NewInMemoryTokenBlacklist(),
		"redis":  redisBlacklist,
	}

	for name, blacklist := range implementations {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			issuedBefore := time.Now().Add(-time.Hour)

			invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
			require.NoError(t, err)
			assert.False(t, invalidated)

			require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

			invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
			require.NoError(t, err)
			assert.True(t, invalidated)

			invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", time.Now().Add(time.Minute))
			require.NoError(t, err)
			assert.False(t, invalidated, "tokens issued later stay valid")

			invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-2", issuedBefore)
			require.NoError(t, err)
			assert.False(t, invalidated)
		})
	}
}

func TestInMemoryTokenBlacklist_ExpirationCleanup(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-short", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenBlacklist_EntriesExpire(t *testing.T) {
	blacklist, mr := newRedisBlacklist(t)
	ctx := context.Background()

	require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	revoked, err := blacklist.IsBlacklisted(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisTokenBlacklist_ConnectionError(t *testing.T) {
	blacklist, mr := newRedisBlacklist(t)
	mr.Close()

	_, err := blacklist.IsBlacklisted(context.Background(), "jti-1")
	assert.Error(t, err)
}
