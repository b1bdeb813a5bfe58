package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedTitle struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheHelper(client, "title:"), mr
}

func TestCacheHelperSetGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "id:1", cachedTitle{ID: 1, Name: "Cached"}, time.Minute))

	var got cachedTitle
	require.NoError(t, helper.Get(ctx, "id:1", &got))
	assert.Equal(t, "Cached", got.Name)
}

func TestCacheHelperMiss(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got cachedTitle
	err := helper.Get(context.Background(), "id:404", &got)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheHelperNilClientDegrades(t *testing.T) {
	helper := NewCacheHelper(nil, "title:")
	ctx := context.Background()

	assert.ErrorIs(t, helper.Get(ctx, "id:1", &cachedTitle{}), ErrCacheNotAvailable)
	assert.NoError(t, helper.Set(ctx, "id:1", cachedTitle{}, time.Minute))
	assert.NoError(t, helper.Delete(ctx, "id:1"))
	assert.NoError(t, helper.InvalidatePattern(ctx, "*"))
}

func TestCacheOrExecuteFetchesOnMiss(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return cachedTitle{ID: 2, Name: "Fetched"}, nil
	}

	var got cachedTitle
	require.NoError(t, helper.CacheOrExecute(ctx, "id:2", &got, time.Minute, fetch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Fetched", got.Name)

	// the async set may still be in flight; wait for the key
	require.Eventually(t, func() bool {
		var cached cachedTitle
		return helper.Get(ctx, "id:2", &cached) == nil
	}, 2*time.Second, 10*time.Millisecond)

	var again cachedTitle
	require.NoError(t, helper.CacheOrExecute(ctx, "id:2", &again, time.Minute, fetch))
	assert.Equal(t, 1, calls, "second call must be served from cache")
}

func TestInvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "list:p1", cachedTitle{ID: 1}, time.Minute))
	require.NoError(t, helper.Set(ctx, "list:p2", cachedTitle{ID: 2}, time.Minute))
	require.NoError(t, helper.Set(ctx, "id:1", cachedTitle{ID: 1}, time.Minute))

	require.NoError(t, helper.InvalidatePattern(ctx, "list:*"))

	var got cachedTitle
	assert.ErrorIs(t, helper.Get(ctx, "list:p1", &got), ErrCacheNotFound)
	assert.ErrorIs(t, helper.Get(ctx, "list:p2", &got), ErrCacheNotFound)
	assert.NoError(t, helper.Get(ctx, "id:1", &got), "other prefixes stay cached")
}

func newTestManager(t *testing.T) *CacheManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheManager(client)
}

func TestInvalidateTitlePurgesDetailAndListings(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Title.Set(ctx, "id:7", cachedTitle{ID: 7}, time.Minute))
	require.NoError(t, cm.Title.Set(ctx, "id:8", cachedTitle{ID: 8}, time.Minute))
	require.NoError(t, cm.Title.Set(ctx, "list:n=:y=:c=:g=:l=20:o=0", cachedTitle{}, time.Minute))

	InvalidateTitle(ctx, cm, 7)

	var got cachedTitle
	assert.ErrorIs(t, cm.Title.Get(ctx, "id:7", &got), ErrCacheNotFound)
	assert.ErrorIs(t, cm.Title.Get(ctx, "list:n=:y=:c=:g=:l=20:o=0", &got), ErrCacheNotFound)
	assert.NoError(t, cm.Title.Get(ctx, "id:8", &got), "other titles stay cached")
}

func TestInvalidateCatalogPurgesListings(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.Catalog.Set(ctx, "categories:q=:l=20:o=0", cachedTitle{}, time.Minute))
	require.NoError(t, cm.Catalog.Set(ctx, "genres:q=rock:l=20:o=0", cachedTitle{}, time.Minute))
	require.NoError(t, cm.Title.Set(ctx, "id:1", cachedTitle{ID: 1}, time.Minute))

	InvalidateCatalog(ctx, cm)

	var got cachedTitle
	assert.ErrorIs(t, cm.Catalog.Get(ctx, "categories:q=:l=20:o=0", &got), ErrCacheNotFound)
	assert.ErrorIs(t, cm.Catalog.Get(ctx, "genres:q=rock:l=20:o=0", &got), ErrCacheNotFound)
	assert.NoError(t, cm.Title.Get(ctx, "id:1", &got), "title details are untouched")
}

func TestInvalidateUserDropsBothLookupKeys(t *testing.T) {
	cm := newTestManager(t)
	ctx := context.Background()

	require.NoError(t, cm.User.Set(ctx, "id:3", cachedTitle{ID: 3}, time.Minute))
	require.NoError(t, cm.User.Set(ctx, "username:renamed", cachedTitle{ID: 3}, time.Minute))
	require.NoError(t, cm.User.Set(ctx, "username:original", cachedTitle{ID: 3}, time.Minute))

	InvalidateUser(ctx, cm, 3, "renamed")
	SafeDelete(ctx, cm.User, "username:original")

	var got cachedTitle
	assert.ErrorIs(t, cm.User.Get(ctx, "id:3", &got), ErrCacheNotFound)
	assert.ErrorIs(t, cm.User.Get(ctx, "username:renamed", &got), ErrCacheNotFound)
	assert.ErrorIs(t, cm.User.Get(ctx, "username:original", &got), ErrCacheNotFound)
}

func TestCacheManagerHealthCheck(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cm := NewCacheManager(client)
	assert.NoError(t, cm.HealthCheck(context.Background()))

	nilCM := NewCacheManager(nil)
	assert.ErrorIs(t, nilCM.HealthCheck(context.Background()), ErrCacheNotAvailable)
}
