package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/domain"
)

type fakeLister struct {
	products []domain.Product
	err      error
	calls    int
}

func (f *fakeLister) ListProducts(_ context.Context, _, _ string) ([]domain.Product, error) {
	f.calls++
	return f.products, f.err
}

var sampleProducts = []domain.Product{
	{ID: "p1", SKU: "CH-100", Name: "Chair", Price: 49.5, Stock: 12},
	{ID: "p2", SKU: "CH-200", Name: "Armchair", Price: 99, Stock: 3},
}

func newRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCache(client), mr
}

func TestProductsReadThrough(t *testing.T) {
	ctx := context.Background()
	cache, _ := newRedisCache(t)
	lister := &fakeLister{products: sampleProducts}
	svc := NewService(lister, cache, time.Minute, zap.NewNop())

	// First call misses the cache and goes upstream.
	got, err := svc.Products(ctx, "tok", "chair")
	require.NoError(t, err)
	assert.Equal(t, sampleProducts, got)
	assert.Equal(t, 1, lister.calls)

	// Second call within the TTL is served from the cache.
	got, err = svc.Products(ctx, "tok", "chair")
	require.NoError(t, err)
	assert.Equal(t, sampleProducts, got)
	assert.Equal(t, 1, lister.calls, "catalog fetched once per cache window")
}

func TestProductsCacheExpiry(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t)
	lister := &fakeLister{products: sampleProducts}
	svc := NewService(lister, cache, time.Minute, zap.NewNop())

	_, err := svc.Products(ctx, "tok", "")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = svc.Products(ctx, "tok", "")
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}

func TestProductsDistinctSearchTermsAreSeparateKeys(t *testing.T) {
	ctx := context.Background()
	cache, _ := newRedisCache(t)
	lister := &fakeLister{products: sampleProducts}
	svc := NewService(lister, cache, time.Minute, zap.NewNop())

	_, err := svc.Products(ctx, "tok", "chair")
	require.NoError(t, err)
	_, err = svc.Products(ctx, "tok", "desk")
	require.NoError(t, err)
	assert.Equal(t, 2, lister.calls)
}

func TestProductsUpstreamFailurePropagates(t *testing.T) {
	lister := &fakeLister{err: errors.New("upstream down")}
	svc := NewService(lister, NoopCache{}, time.Minute, zap.NewNop())

	_, err := svc.Products(context.Background(), "tok", "")
	assert.Error(t, err)
}

func TestProductsNoopCacheAlwaysFetches(t *testing.T) {
	lister := &fakeLister{products: sampleProducts}
	svc := NewService(lister, NoopCache{}, time.Minute, zap.NewNop())

	_, _ = svc.Products(context.Background(), "tok", "")
	_, _ = svc.Products(context.Background(), "tok", "")
	assert.Equal(t, 2, lister.calls)
}
