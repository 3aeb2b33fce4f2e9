// Package entitlement resolves a caller's subscription tier.
package entitlement

import (
	"context"
	"strings"
)

// TierFree is the tier of callers without a paid subscription.
const TierFree = "free"

// Gate returns the subscription tier of a caller.
type Gate interface {
	Tier(ctx context.Context, callerID string) (string, error)
}

// IsPremium reports whether a tier unlocks full assessments. Any
// non-empty tier other than "free" is premium.
func IsPremium(tier string) bool {
	t := strings.ToLower(strings.TrimSpace(tier))
	return t != "" && t != TierFree
}

// StaticGate serves tiers from a fixed map, typically loaded from config.
type StaticGate struct {
	tiers       map[string]string
	defaultTier string
}

// NewStaticGate copies tiers. Unknown callers get defaultTier, or
// TierFree when defaultTier is empty.
func NewStaticGate(tiers map[string]string, defaultTier string) *StaticGate {
	if defaultTier == "" {
		defaultTier = TierFree
	}
	m := make(map[string]string, len(tiers))
	for k, v := range tiers {
		m[k] = v
	}
	return &StaticGate{tiers: m, defaultTier: defaultTier}
}

func (g *StaticGate) Tier(_ context.Context, callerID string) (string, error) {
	if t, ok := g.tiers[callerID]; ok {
		return t, nil
	}
	return g.defaultTier, nil
}

// GateFunc adapts a function to the Gate interface.
type GateFunc func(ctx context.Context, callerID string) (string, error)

func (f GateFunc) Tier(ctx context.Context, callerID string) (string, error) {
	return f(ctx, callerID)
}
