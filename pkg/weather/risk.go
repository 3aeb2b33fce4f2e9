package weather

import (
	"fmt"
	"strings"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

// Risk points per triggered condition.
const (
	ThunderstormRisk   = 30
	SnowRisk           = 20
	HeavyRainRisk      = 15
	StrongWindRisk     = 20
	LowVisibilityRisk  = 15
	MaxWeatherRisk     = 50
	StrongWindSpeed    = 20.0   // provider units (m/s in metric)
	LowVisibilityLimit = 1000.0 // metres
)

// DefaultVisibility is assumed when the provider omits visibility.
const DefaultVisibility = 10000.0

// Observation is a normalized current-weather reading.
type Observation struct {
	Condition   string // provider's primary condition group, e.g. "Rain"
	Description string
	WindSpeed   float64
	Visibility  float64
	Temperature *float64
}

// Evaluate maps an observation to a finding. Contributions are summed
// and clamped to MaxWeatherRisk; each triggered rule adds one factor.
func Evaluate(obs Observation) models.WeatherFinding {
	risk := 0
	factors := []string{}

	switch obs.Condition {
	case "Thunderstorm":
		risk += ThunderstormRisk
		factors = append(factors, "Thunderstorm activity")
	case "Snow", "Blizzard":
		risk += SnowRisk
		factors = append(factors, "Snow/winter conditions")
	case "Rain":
		if strings.Contains(strings.ToLower(obs.Description), "heavy") {
			risk += HeavyRainRisk
			factors = append(factors, "Heavy rainfall")
		}
	}
	if obs.WindSpeed > StrongWindSpeed {
		risk += StrongWindRisk
		factors = append(factors, fmt.Sprintf("Strong winds (%g m/s)", obs.WindSpeed))
	}
	if obs.Visibility < LowVisibilityLimit {
		risk += LowVisibilityRisk
		factors = append(factors, "Low visibility")
	}

	if risk > MaxWeatherRisk {
		risk = MaxWeatherRisk
	}

	conditions := obs.Condition
	if conditions == "" {
		conditions = models.UnknownWeather().Conditions
	}

	return models.WeatherFinding{
		Risk:       risk,
		Conditions: conditions,
		Details: &models.WeatherDetail{
			Description: obs.Description,
			WindSpeed:   obs.WindSpeed,
			Visibility:  obs.Visibility,
			Temperature: obs.Temperature,
			Factors:     factors,
		},
	}
}
