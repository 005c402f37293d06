package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storekeep/adminapi/internal/domain"
)

var testCred = domain.Credential{
	Token: "jwt-token",
	User:  domain.Profile{ID: "u1", Name: "Jane", Email: "jane@x.com", Role: "admin"},
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "s1", testCred, time.Minute))
	cred, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testCred, cred)

	require.NoError(t, store.Clear(ctx, "s1"))
	_, ok, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Set(ctx, "s1", testCred, time.Minute))

	current = current.Add(2 * time.Minute)
	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "expired credentials are not returned")
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "s1", testCred, time.Minute))
	cred, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testCred, cred)

	require.NoError(t, store.Clear(ctx, "s1"))
	_, ok, err = store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStoreTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	require.NoError(t, store.Set(ctx, "s1", testCred, time.Minute))

	mr.FastForward(2 * time.Minute)
	_, ok, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok, "redis drops the key after its TTL")
}
