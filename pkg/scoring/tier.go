package scoring

import (
	"time"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

// PremiumSignals holds the checked signals of a premium assessment.
type PremiumSignals struct {
	Zone      models.ZoneRiskResult
	Sanctions []models.Outcome[models.SanctionsFinding]
	Weather   models.Outcome[models.WeatherFinding]
}

// WeatherDisclosure is the weather detail shown to premium callers.
type WeatherDisclosure struct {
	Conditions string                `json:"conditions"`
	Detail     *models.WeatherDetail `json:"detail,omitempty"`
	Status     models.OutcomeStatus  `json:"status"`
	Reason     models.DegradeReason  `json:"reason,omitempty"`
}

// SanctionsDisclosure is the per-party detail shown to premium callers.
type SanctionsDisclosure struct {
	models.SanctionsFinding
	Status models.OutcomeStatus `json:"status"`
	Reason models.DegradeReason `json:"reason,omitempty"`
}

// Free shapes a zone-only result for a free-tier caller: the score is
// capped at FreeTierCap, only the first zone factor is disclosed and the
// premium signals are marked unavailable.
func Free(zone models.ZoneRiskResult, now time.Time) models.RiskAssessment {
	score := clamp(min(zone.Score, FreeTierCap), 0, MaxScore)

	details := []string{}
	if len(zone.Factors) > 0 {
		details = append(details, zone.Factors[0])
	}

	return models.RiskAssessment{
		Score:    score,
		Level:    LevelFor(score),
		Advisory: AdvisoryUpgrade,
		Factors: models.Factors{
			Zone: models.Factor{
				Score:     zone.Score,
				Available: true,
				Details:   details,
			},
			Sanctions: models.Factor{Available: false},
			Weather:   models.Factor{Available: false},
		},
		Premium:     false,
		LastUpdated: now,
	}
}

// Premium aggregates all signals with the full weighted formula and
// discloses every detail.
func Premium(s PremiumSignals, now time.Time) models.RiskAssessment {
	findings := make([]models.SanctionsFinding, 0, len(s.Sanctions))
	disclosed := make([]SanctionsDisclosure, 0, len(s.Sanctions))
	for _, o := range s.Sanctions {
		findings = append(findings, o.Value)
		disclosed = append(disclosed, SanctionsDisclosure{
			SanctionsFinding: o.Value,
			Status:           o.Status,
			Reason:           o.Reason,
		})
	}

	sanctionsScore := SanctionsScore(findings)
	weatherScore := clamp(s.Weather.Value.Risk, 0, maxWeatherScore)
	score := Aggregate(s.Zone.Score, sanctionsScore, weatherScore)
	level := LevelFor(score)

	return models.RiskAssessment{
		Score:    score,
		Level:    level,
		Advisory: AdvisoryFor(level),
		Factors: models.Factors{
			Zone: models.Factor{
				Score:     s.Zone.Score,
				Weight:    ZoneWeight.InexactFloat64(),
				Available: true,
				Details:   s.Zone.Factors,
			},
			Sanctions: models.Factor{
				Score:     sanctionsScore,
				Weight:    SanctionsWeight.InexactFloat64(),
				Available: true,
				Details:   disclosed,
			},
			Weather: models.Factor{
				Score:     weatherScore,
				Weight:    WeatherWeight.InexactFloat64(),
				Available: true,
				Details: WeatherDisclosure{
					Conditions: s.Weather.Value.Conditions,
					Detail:     s.Weather.Value.Details,
					Status:     s.Weather.Status,
					Reason:     s.Weather.Reason,
				},
			},
		},
		Premium:     true,
		LastUpdated: now,
	}
}

// Quick builds the zone-only quick check.
func Quick(zone models.ZoneRiskResult) models.QuickCheck {
	return models.QuickCheck{
		Score:       zone.Score,
		Level:       LevelFor(zone.Score),
		HasRisk:     zone.Score > quickRiskThreshold,
		FactorCount: len(zone.Factors),
	}
}

const (
	quickRiskThreshold = 30
	maxWeatherScore    = 50
)
