package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokaycavdar/go-georisk/pkg/geo"
	"github.com/gokaycavdar/go-georisk/pkg/models"
)

type clockedCache interface {
	RouteCache
	setClock(func() time.Time)
}

func (m *MemoryStore) setClock(now func() time.Time) { m.now = now }
func (s *BadgerStore) setClock(now func() time.Time) { s.now = now }

func backends(t *testing.T) map[string]clockedCache {
	t.Helper()

	bs, err := OpenBadgerStore(BadgerConfig{InMemory: true, TTL: time.Hour})
	require.NoError(t, err)
	t.Cleanup(func() { _ = bs.Close() })

	return map[string]clockedCache{
		"memory": NewMemoryStore(time.Hour),
		"badger": bs,
	}
}

var londonToDover = []models.Coordinates{
	{Lat: 51.5074, Lon: -0.1278},
	{Lat: 51.2787, Lon: 0.5217},
	{Lat: 51.1279, Lon: 1.3134},
}

func TestRouteKey(t *testing.T) {
	assert.Equal(t, "car::London=>Dover", RouteKey("London", "Dover", ""))
	assert.Equal(t, "truck::London=>Dover", RouteKey(" London ", "Dover", "truck"))
}

func TestRouteCacheRoundTrip(t *testing.T) {
	for name, cache := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			cache.setClock(func() time.Time { return now })

			stored, err := cache.Put(ctx, models.CachedRoute{
				Origin: "London", Dest: "Dover", Points: londonToDover, DurationSec: 6300,
			})
			require.NoError(t, err)
			assert.Equal(t, "car::London=>Dover", stored.Key)
			assert.Equal(t, DefaultProfile, stored.Profile)
			assert.InDelta(t, geo.PathLength(londonToDover), stored.DistanceKm, 1e-9)
			assert.Equal(t, now.Add(time.Hour), stored.ExpiresAt)

			got, err := cache.Get(ctx, "London", "Dover", "")
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, londonToDover, got.Points)
			assert.Equal(t, 6300.0, got.DurationSec)
			assert.True(t, got.CreatedAt.Equal(now))
		})
	}
}

func TestRouteCacheUpsertKeepsCreatedAt(t *testing.T) {
	for name, cache := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			second := first.Add(10 * time.Minute)

			cache.setClock(func() time.Time { return first })
			_, err := cache.Put(ctx, models.CachedRoute{Origin: "A", Dest: "B", DistanceKm: 10})
			require.NoError(t, err)

			cache.setClock(func() time.Time { return second })
			stored, err := cache.Put(ctx, models.CachedRoute{Origin: "A", Dest: "B", DistanceKm: 12})
			require.NoError(t, err)

			assert.True(t, stored.CreatedAt.Equal(first))
			assert.True(t, stored.UpdatedAt.Equal(second))
			assert.Equal(t, 12.0, stored.DistanceKm, "explicit distance is kept")
		})
	}
}

func TestRouteCacheMissAndExpiry(t *testing.T) {
	for name, cache := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			cache.setClock(func() time.Time { return now })

			got, err := cache.Get(ctx, "Nowhere", "Else", "car")
			require.NoError(t, err)
			assert.Nil(t, got)

			_, err = cache.Put(ctx, models.CachedRoute{Origin: "A", Dest: "B", Profile: "truck"})
			require.NoError(t, err)

			got, err = cache.Get(ctx, "A", "B", "car")
			require.NoError(t, err)
			assert.Nil(t, got, "profiles are separate keys")

			cache.setClock(func() time.Time { return now.Add(2 * time.Hour) })
			got, err = cache.Get(ctx, "A", "B", "truck")
			require.NoError(t, err)
			assert.Nil(t, got, "expired routes are not returned")
		})
	}
}

func TestRouteCacheRejectsIncompleteRoute(t *testing.T) {
	for name, cache := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := cache.Put(context.Background(), models.CachedRoute{Origin: "A"})
			assert.ErrorIs(t, err, ErrInvalidRoute)
		})
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	_, err := store.Put(ctx, models.CachedRoute{Origin: "A", Dest: "B", Points: londonToDover})
	require.NoError(t, err)

	got, err := store.Get(ctx, "A", "B", "")
	require.NoError(t, err)
	got.Points[0].Lat = 0

	again, err := store.Get(ctx, "A", "B", "")
	require.NoError(t, err)
	assert.Equal(t, londonToDover[0], again.Points[0])
	assert.Equal(t, 1, store.Len())
}

func TestOpenBadgerStoreRequiresPath(t *testing.T) {
	_, err := OpenBadgerStore(BadgerConfig{})
	assert.Error(t, err)
}

func TestBadgerStorePersistsToDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenBadgerStore(BadgerConfig{Path: dir})
	require.NoError(t, err)
	_, err = store.Put(ctx, models.CachedRoute{Origin: "A", Dest: "B", DistanceKm: 5})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = OpenBadgerStore(BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "A", "B", "")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 5.0, got.DistanceKm)
}

func TestCancelledContext(t *testing.T) {
	bs, err := OpenBadgerStore(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	defer bs.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = bs.Get(ctx, "A", "B", "")
	assert.ErrorIs(t, err, context.Canceled)
}
