package storage

import (
	"context"
	"sync"
	"time"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

// MemoryStore is a thread-safe in-process RouteCache.
// Intended for tests and single-instance deployments.
type MemoryStore struct {
	data map[string]models.CachedRoute // Key: RouteKey
	mu   sync.RWMutex
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore creates an empty store. A ttl <= 0 uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		data: make(map[string]models.CachedRoute),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns a copy of the cached route, or nil when absent or expired.
func (m *MemoryStore) Get(_ context.Context, origin, dest, profile string) (*models.CachedRoute, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	route, exists := m.data[RouteKey(origin, dest, profile)]
	if !exists || route.Expired(m.now()) {
		return nil, nil
	}
	return cloneRoute(route), nil
}

// Put upserts a route.
func (m *MemoryStore) Put(_ context.Context, route models.CachedRoute) (*models.CachedRoute, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var existing *models.CachedRoute
	if cur, ok := m.data[RouteKey(route.Origin, route.Dest, route.Profile)]; ok {
		existing = &cur
	}

	record, err := prepare(route, existing, m.now(), m.ttl)
	if err != nil {
		return nil, err
	}
	record.Points = append([]models.Coordinates(nil), record.Points...)
	m.data[record.Key] = record
	return cloneRoute(record), nil
}

// Len returns the number of stored routes, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func cloneRoute(r models.CachedRoute) *models.CachedRoute {
	r.Points = append([]models.Coordinates(nil), r.Points...)
	return &r
}
