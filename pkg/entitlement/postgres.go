package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const tierQuery = `SELECT COALESCE(subscription_tier, '') FROM users WHERE external_id=$1`

// rowQuerier is the subset of *pgxpool.Pool the gate needs.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresGate reads subscription tiers from the application's users table.
type PostgresGate struct {
	db rowQuerier
}

// NewPostgresGate wraps an existing pool.
func NewPostgresGate(pool *pgxpool.Pool) *PostgresGate {
	return &PostgresGate{db: pool}
}

// OpenPostgresGate connects to dsn and verifies the connection.
func OpenPostgresGate(ctx context.Context, dsn string) (*PostgresGate, func(), error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect entitlement db: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("ping entitlement db: %w", err)
	}
	return NewPostgresGate(pool), pool.Close, nil
}

// Tier returns the caller's tier. A caller without a users row, or with
// no tier recorded, is on the free tier.
func (g *PostgresGate) Tier(ctx context.Context, callerID string) (string, error) {
	var tier string
	err := g.db.QueryRow(ctx, tierQuery, callerID).Scan(&tier)
	if errors.Is(err, pgx.ErrNoRows) {
		return TierFree, nil
	}
	if err != nil {
		return "", fmt.Errorf("lookup subscription tier: %w", err)
	}
	if tier == "" {
		return TierFree, nil
	}
	return tier, nil
}
