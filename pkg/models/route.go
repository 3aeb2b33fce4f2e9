package models

import "time"

// CachedRoute is computed route geometry stored by the host application
// so map views do not have to re-request directions.
type CachedRoute struct {
	Key         string        `json:"key"`
	Origin      string        `json:"origin"`
	Dest        string        `json:"dest"`
	Profile     string        `json:"profile"`
	Points      []Coordinates `json:"points"`
	DistanceKm  float64       `json:"distance_km"`
	DurationSec float64       `json:"duration_sec"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	ExpiresAt   time.Time     `json:"expires_at"`
}

// Expired reports whether the route is past its expiry at the given time.
func (r *CachedRoute) Expired(now time.Time) bool {
	return !r.ExpiresAt.IsZero() && r.ExpiresAt.Before(now)
}
