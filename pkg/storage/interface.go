// Package storage caches computed route geometry for map views.
package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gokaycavdar/go-georisk/pkg/geo"
	"github.com/gokaycavdar/go-georisk/pkg/models"
)

const (
	// DefaultProfile is the routing profile used when none is given.
	DefaultProfile = "car"

	// DefaultTTL is how long a cached route stays valid.
	DefaultTTL = 7 * 24 * time.Hour
)

// ErrInvalidRoute is returned by Put when origin or destination is empty.
var ErrInvalidRoute = errors.New("storage: route needs origin and destination")

// RouteCache stores route geometry keyed by profile, origin and
// destination. Implementations can use any backend: in-memory, BadgerDB,
// Redis, etc.
type RouteCache interface {
	// Get returns the cached route, or nil, nil when it is absent or
	// expired.
	Get(ctx context.Context, origin, dest, profile string) (*models.CachedRoute, error)

	// Put upserts a route. Key, timestamps, expiry and a missing
	// distance are filled in; the stored record is returned.
	Put(ctx context.Context, route models.CachedRoute) (*models.CachedRoute, error)
}

// RouteKey builds the cache key "<profile>::<origin>=><dest>".
func RouteKey(origin, dest, profile string) string {
	if profile == "" {
		profile = DefaultProfile
	}
	return profile + "::" + strings.TrimSpace(origin) + "=>" + strings.TrimSpace(dest)
}

// prepare turns an incoming route into the record to store. existing is
// the current record for the same key, if any.
func prepare(in models.CachedRoute, existing *models.CachedRoute, now time.Time, ttl time.Duration) (models.CachedRoute, error) {
	in.Origin = strings.TrimSpace(in.Origin)
	in.Dest = strings.TrimSpace(in.Dest)
	if in.Origin == "" || in.Dest == "" {
		return models.CachedRoute{}, ErrInvalidRoute
	}
	if in.Profile == "" {
		in.Profile = DefaultProfile
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	in.Key = RouteKey(in.Origin, in.Dest, in.Profile)
	if in.DistanceKm <= 0 && len(in.Points) > 1 {
		in.DistanceKm = geo.PathLength(in.Points)
	}

	in.CreatedAt = now
	if existing != nil && !existing.CreatedAt.IsZero() {
		in.CreatedAt = existing.CreatedAt
	}
	in.UpdatedAt = now
	in.ExpiresAt = now.Add(ttl)
	return in, nil
}
