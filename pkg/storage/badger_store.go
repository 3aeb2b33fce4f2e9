package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

const routeKeyPrefix = "route/"

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	// Path is the database directory. Required unless InMemory is true.
	Path string

	// InMemory keeps all data in memory. Intended for tests.
	InMemory bool

	// TTL of cached routes. Zero uses DefaultTTL.
	TTL time.Duration

	// Logger receives badger's internal logs. Nil silences them.
	Logger *slog.Logger
}

// BadgerStore is a RouteCache backed by BadgerDB. Expiry is enforced by
// badger's per-entry TTL.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// OpenBadgerStore opens (or creates) the database.
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("storage: path is required for persistent route cache")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("storage: create route cache directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open route cache: %w", err)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BadgerStore{db: db, ttl: ttl, now: time.Now}, nil
}

// Close closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// Get returns the cached route, or nil when absent or expired.
func (s *BadgerStore) Get(ctx context.Context, origin, dest, profile string) (*models.CachedRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var route *models.CachedRoute
	err := s.db.View(func(txn *badger.Txn) error {
		r, err := readRoute(txn, RouteKey(origin, dest, profile))
		route = r
		return err
	})
	if err != nil {
		return nil, err
	}
	if route == nil || route.Expired(s.now()) {
		return nil, nil
	}
	return route, nil
}

// Put upserts a route with the store's TTL.
func (s *BadgerStore) Put(ctx context.Context, route models.CachedRoute) (*models.CachedRoute, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stored models.CachedRoute
	err := s.db.Update(func(txn *badger.Txn) error {
		existing, err := readRoute(txn, RouteKey(route.Origin, route.Dest, route.Profile))
		if err != nil {
			return err
		}

		stored, err = prepare(route, existing, s.now(), s.ttl)
		if err != nil {
			return err
		}

		data, err := json.Marshal(stored)
		if err != nil {
			return fmt.Errorf("storage: encode route: %w", err)
		}
		entry := badger.NewEntry([]byte(routeKeyPrefix+stored.Key), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func readRoute(txn *badger.Txn, key string) (*models.CachedRoute, error) {
	item, err := txn.Get([]byte(routeKeyPrefix + key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read route: %w", err)
	}

	var route models.CachedRoute
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &route)
	})
	if err != nil {
		return nil, fmt.Errorf("storage: decode route: %w", err)
	}
	return &route, nil
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
