package models

import "time"

// Level is the severity band of an aggregate score.
type Level string

const (
	LevelLow    Level = "LOW"
	LevelMedium Level = "MEDIUM"
	LevelHigh   Level = "HIGH"
)

// Contribution is a single scored zone finding.
type Contribution struct {
	Value  int    `json:"value"`
	Factor string `json:"factor"`
}

// ZoneRiskResult is the output of the zone calculator.
//
// Factors lists the human-readable reasons in evaluation order:
// origin sanctions, destination sanctions, origin conflict,
// destination conflict, then one entry per risky transit point.
type ZoneRiskResult struct {
	Origin      []Contribution `json:"origin"`
	Destination []Contribution `json:"destination"`
	Transit     []Contribution `json:"transit"`

	// Score is the clamped total, always within [0, 100].
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
}

// MatchedEntity summarizes one watchlist entry that matched a party.
type MatchedEntity struct {
	Name   string  `json:"name"`
	Schema string  `json:"type"`
	Source string  `json:"source"`
	Score  float64 `json:"score"`
}

// SanctionsFinding is the screening result for one party.
type SanctionsFinding struct {
	Party   string `json:"party"`
	Matched bool   `json:"matched"`

	// Confidence is the best match score scaled to 0..100.
	Confidence int             `json:"confidence"`
	Entities   []MatchedEntity `json:"entities"`
}

// WeatherDetail carries the observation behind a weather finding.
type WeatherDetail struct {
	Description string   `json:"description"`
	WindSpeed   float64  `json:"wind_speed"`
	Visibility  float64  `json:"visibility"`
	Temperature *float64 `json:"temp,omitempty"`
	Factors     []string `json:"factors"`
}

// WeatherFinding is the destination weather contribution, capped at 50.
type WeatherFinding struct {
	Risk       int            `json:"risk"`
	Conditions string         `json:"conditions"`
	Details    *WeatherDetail `json:"details"`
}

// UnknownWeather is the zero-risk finding returned whenever weather
// could not be checked.
func UnknownWeather() WeatherFinding {
	return WeatherFinding{Risk: 0, Conditions: "Unknown"}
}

// Factor is one signal in the assessment breakdown.
type Factor struct {
	Score     int     `json:"score"`
	Weight    float64 `json:"weight,omitempty"`
	Available bool    `json:"available"`
	Details   any     `json:"details,omitempty"`
}

// Factors groups the per-signal breakdown.
type Factors struct {
	Zone      Factor `json:"zone"`
	Sanctions Factor `json:"sanctions"`
	Weather   Factor `json:"weather"`
}

// RiskAssessment is the full, tier-shaped result of a route assessment.
type RiskAssessment struct {
	ID          string    `json:"id"`
	Score       int       `json:"score"`
	Level       Level     `json:"level"`
	Advisory    string    `json:"advisory"`
	Factors     Factors   `json:"factors"`
	Premium     bool      `json:"premium"`
	Tier        string    `json:"tier"`
	LastUpdated time.Time `json:"last_updated"`
}

// QuickCheck is the zone-only result used by quoting screens.
type QuickCheck struct {
	Score       int   `json:"score"`
	Level       Level `json:"level"`
	HasRisk     bool  `json:"has_risk"`
	FactorCount int   `json:"factors"`
}

// RouteRiskSummary is the condensed assessment shown on route maps.
type RouteRiskSummary struct {
	Score       int       `json:"score"`
	Level       Level     `json:"level"`
	Advisory    string    `json:"advisory"`
	LastUpdated time.Time `json:"last_updated"`
}

// HighRiskCountry is a reference-table entry prepared for display.
type HighRiskCountry struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// HighRiskCountries is the read-only dump of the zone reference data.
type HighRiskCountries struct {
	Sanctions []HighRiskCountry `json:"sanctions"`
	Conflict  []HighRiskCountry `json:"conflict"`
	Maritime  []string          `json:"maritime"`
}
