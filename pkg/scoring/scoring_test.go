package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestAggregateMatchesWeightedFormula(t *testing.T) {
	for zone := 0; zone <= 100; zone += 5 {
		for sanctions := 0; sanctions <= 100; sanctions += 35 {
			for weather := 0; weather <= 50; weather += 5 {
				want := int(math.Round(float64(zone)*0.4 + float64(sanctions)*0.4 + float64(weather)*0.2))
				want = min(want, 100)

				got := Aggregate(zone, sanctions, weather)
				require.Equal(t, want, got, "zone=%d sanctions=%d weather=%d", zone, sanctions, weather)
				require.GreaterOrEqual(t, got, 0)
				require.LessOrEqual(t, got, 100)
			}
		}
	}
}

func TestAggregateEdges(t *testing.T) {
	assert.Equal(t, 1, Aggregate(1, 1, 1))
	assert.Equal(t, 22, Aggregate(55, 0, 0))
	assert.Equal(t, 0, Aggregate(-10, 0, 0))
}

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score int
		level models.Level
	}{
		{0, models.LevelLow},
		{40, models.LevelLow},
		{41, models.LevelMedium},
		{70, models.LevelMedium},
		{71, models.LevelHigh},
		{100, models.LevelHigh},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.level, LevelFor(tc.score), "score %d", tc.score)
	}
}

func TestAdvisoryFor(t *testing.T) {
	assert.Equal(t, AdvisoryHigh, AdvisoryFor(models.LevelHigh))
	assert.Equal(t, AdvisoryMedium, AdvisoryFor(models.LevelMedium))
	assert.Equal(t, AdvisoryLow, AdvisoryFor(models.LevelLow))
}

func TestSanctionsScoreIsFlatPerMatch(t *testing.T) {
	findings := []models.SanctionsFinding{
		{Party: "a", Matched: true, Confidence: 95},
		{Party: "b", Matched: false},
		{Party: "c", Matched: true, Confidence: 71},
	}
	assert.Equal(t, 70, SanctionsScore(findings))

	findings = append(findings, models.SanctionsFinding{Matched: true}, models.SanctionsFinding{Matched: true})
	assert.Equal(t, 100, SanctionsScore(findings), "clamped")

	assert.Zero(t, SanctionsScore([]models.SanctionsFinding{{Party: "clean", Confidence: 70}}))
}

func hormuzZone() models.ZoneRiskResult {
	return models.ZoneRiskResult{
		Score: 55,
		Factors: []string{
			"Destination (Iran) is under sanctions",
			"Transit via Strait of Hormuz — elevated maritime risk",
		},
	}
}

func TestFreeTierDisclosure(t *testing.T) {
	got := Free(hormuzZone(), now)

	assert.Equal(t, 55, got.Score)
	assert.Equal(t, models.LevelMedium, got.Level)
	assert.Equal(t, AdvisoryUpgrade, got.Advisory)
	assert.False(t, got.Premium)
	assert.Equal(t, now, got.LastUpdated)

	assert.True(t, got.Factors.Zone.Available)
	assert.Equal(t, []string{"Destination (Iran) is under sanctions"}, got.Factors.Zone.Details)
	assert.False(t, got.Factors.Sanctions.Available)
	assert.False(t, got.Factors.Weather.Available)
	assert.Nil(t, got.Factors.Sanctions.Details)
	assert.Nil(t, got.Factors.Weather.Details)
}

func TestFreeTierNeverHigh(t *testing.T) {
	for score := 0; score <= 100; score++ {
		got := Free(models.ZoneRiskResult{Score: score}, now)
		assert.LessOrEqual(t, got.Score, FreeTierCap)
		assert.NotEqual(t, models.LevelHigh, got.Level)
		assert.Empty(t, got.Factors.Zone.Details)
	}
}

func TestPremiumAggregation(t *testing.T) {
	signals := PremiumSignals{
		Zone: hormuzZone(),
		Sanctions: []models.Outcome[models.SanctionsFinding]{
			models.Ok(models.SanctionsFinding{Party: "a", Matched: true, Confidence: 95}),
			models.Ok(models.SanctionsFinding{Party: "b", Matched: true, Confidence: 80}),
			models.Degraded(models.SanctionsFinding{Party: "c"}, models.ReasonUpstreamUnavailable, nil),
		},
		Weather: models.Ok(models.WeatherFinding{Risk: 30, Conditions: "Thunderstorm"}),
	}

	got := Premium(signals, now)

	// round(55*0.4 + 70*0.4 + 30*0.2) = round(22 + 28 + 6) = 56
	assert.Equal(t, 56, got.Score)
	assert.Equal(t, models.LevelMedium, got.Level)
	assert.Equal(t, AdvisoryMedium, got.Advisory)
	assert.True(t, got.Premium)

	assert.Equal(t, 55, got.Factors.Zone.Score)
	assert.InDelta(t, 0.4, got.Factors.Zone.Weight, 1e-9)
	assert.Equal(t, hormuzZone().Factors, got.Factors.Zone.Details)

	assert.Equal(t, 70, got.Factors.Sanctions.Score)
	assert.True(t, got.Factors.Sanctions.Available)
	disclosed, ok := got.Factors.Sanctions.Details.([]SanctionsDisclosure)
	require.True(t, ok)
	require.Len(t, disclosed, 3)
	assert.Equal(t, models.StatusDegraded, disclosed[2].Status)

	assert.Equal(t, 30, got.Factors.Weather.Score)
	assert.InDelta(t, 0.2, got.Factors.Weather.Weight, 1e-9)
	weather, ok := got.Factors.Weather.Details.(WeatherDisclosure)
	require.True(t, ok)
	assert.Equal(t, "Thunderstorm", weather.Conditions)
}

func TestPremiumAllQuiet(t *testing.T) {
	got := Premium(PremiumSignals{
		Weather: models.Degraded(models.UnknownWeather(), models.ReasonConfigMissing, nil),
	}, now)

	assert.Equal(t, 0, got.Score)
	assert.Equal(t, models.LevelLow, got.Level)
	assert.Equal(t, AdvisoryLow, got.Advisory)
}

func TestPremiumCanReachHigh(t *testing.T) {
	got := Premium(PremiumSignals{
		Zone: models.ZoneRiskResult{Score: 100},
		Sanctions: []models.Outcome[models.SanctionsFinding]{
			models.Ok(models.SanctionsFinding{Matched: true}),
			models.Ok(models.SanctionsFinding{Matched: true}),
			models.Ok(models.SanctionsFinding{Matched: true}),
		},
		Weather: models.Ok(models.WeatherFinding{Risk: 50}),
	}, now)

	assert.Equal(t, 90, got.Score)
	assert.Equal(t, models.LevelHigh, got.Level)
}

func TestQuick(t *testing.T) {
	got := Quick(models.ZoneRiskResult{Score: 25, Factors: []string{"Destination (Yemen) is in active conflict zone"}})
	assert.Equal(t, models.QuickCheck{Score: 25, Level: models.LevelLow, HasRisk: false, FactorCount: 1}, got)

	got = Quick(models.ZoneRiskResult{Score: 40, Factors: []string{"x"}})
	assert.True(t, got.HasRisk)
	assert.Equal(t, models.LevelLow, got.Level)
}
