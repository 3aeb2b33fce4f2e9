// Package scoring fuses zone, sanctions and weather signals into a single
// score and shapes the result for the caller's subscription tier.
package scoring

import (
	"github.com/shopspring/decimal"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

// Weights of each signal in the aggregate score.
var (
	ZoneWeight      = decimal.RequireFromString("0.40")
	SanctionsWeight = decimal.RequireFromString("0.40")
	WeatherWeight   = decimal.RequireFromString("0.20")
)

const (
	// SanctionsMatchScore is added per matched party regardless of the
	// match confidence.
	SanctionsMatchScore = 35

	// FreeTierCap is the highest score a free-tier caller can see.
	FreeTierCap = 60

	MaxScore = 100

	highThreshold   = 70
	mediumThreshold = 40
)

// Advisory texts per severity band.
const (
	AdvisoryHigh    = "HIGH RISK: This route has significant risk factors. Consider alternative routing, additional insurance, or enhanced due diligence before proceeding."
	AdvisoryMedium  = "MEDIUM RISK: Elevated risk factors detected. Monitor conditions closely and consider contingency plans."
	AdvisoryLow     = "LOW RISK: Route appears stable. Standard procedures apply."
	AdvisoryUpgrade = "Upgrade to Pro for detailed risk analysis including sanctions screening and weather impact."
)

// Aggregate returns round(zone*0.40 + sanctions*0.40 + weather*0.20)
// clamped to [0, 100]. The arithmetic is decimal so the result is exact
// for every integer input.
func Aggregate(zone, sanctions, weather int) int {
	sum := decimal.NewFromInt(int64(zone)).Mul(ZoneWeight).
		Add(decimal.NewFromInt(int64(sanctions)).Mul(SanctionsWeight)).
		Add(decimal.NewFromInt(int64(weather)).Mul(WeatherWeight))

	return clamp(int(sum.Round(0).IntPart()), 0, MaxScore)
}

// LevelFor maps a score to its severity band.
func LevelFor(score int) models.Level {
	switch {
	case score > highThreshold:
		return models.LevelHigh
	case score > mediumThreshold:
		return models.LevelMedium
	default:
		return models.LevelLow
	}
}

// AdvisoryFor returns the fixed advisory text of a level.
func AdvisoryFor(level models.Level) string {
	switch level {
	case models.LevelHigh:
		return AdvisoryHigh
	case models.LevelMedium:
		return AdvisoryMedium
	default:
		return AdvisoryLow
	}
}

// SanctionsScore converts per-party findings into the sanctions signal:
// a flat increment per matched party, clamped to 100.
func SanctionsScore(findings []models.SanctionsFinding) int {
	score := 0
	for _, f := range findings {
		if f.Matched {
			score += SanctionsMatchScore
		}
	}
	return clamp(score, 0, MaxScore)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
