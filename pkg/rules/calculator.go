package rules

import (
	"github.com/gokaycavdar/go-georisk/pkg/models"
	"github.com/gokaycavdar/go-georisk/pkg/zones"
)

// Default points per zone finding.
const (
	SanctionedCountryScore = 40
	ConflictZoneScore      = 25
	MaritimeCorridorScore  = 15

	// MaxZoneScore caps the summed zone contributions.
	MaxZoneScore = 100
)

// ZoneCalculator scores a route against a zone table.
//
// Rules run in the order they were added and their findings are
// concatenated, so the factor list order is fully determined by the
// rule order. The calculator has no mutable state after construction
// and is safe for concurrent use.
type ZoneCalculator struct {
	table *zones.Table
	rules []Rule
}

// NewZoneCalculator returns a calculator with the standard rule set:
// sanctioned endpoints, conflict endpoints, then maritime corridors.
func NewZoneCalculator(table *zones.Table) *ZoneCalculator {
	return NewZoneCalculatorWithRules(table,
		NewSanctionedCountryRule(table, SanctionedCountryScore),
		NewConflictZoneRule(table, ConflictZoneScore),
		NewMaritimeCorridorRule(table, MaritimeCorridorScore),
	)
}

// NewZoneCalculatorWithRules returns a calculator that evaluates exactly rs.
func NewZoneCalculatorWithRules(table *zones.Table, rs ...Rule) *ZoneCalculator {
	return &ZoneCalculator{table: table, rules: rs}
}

// Table returns the reference data the calculator was built with.
func (c *ZoneCalculator) Table() *zones.Table {
	return c.table
}

// Calculate scores origin/destination countries and transit points.
func (c *ZoneCalculator) Calculate(originCountry, destCountry string, transitPoints []string) models.ZoneRiskResult {
	in := Input{
		OriginCountry: originCountry,
		DestCountry:   destCountry,
		TransitPoints: transitPoints,
	}

	result := models.ZoneRiskResult{
		Origin:      []models.Contribution{},
		Destination: []models.Contribution{},
		Transit:     []models.Contribution{},
		Factors:     []string{},
	}

	total := 0
	for _, rule := range c.rules {
		for _, f := range rule.Evaluate(in) {
			total += f.Value
			result.Factors = append(result.Factors, f.Factor)

			switch f.Side {
			case SideOrigin:
				result.Origin = append(result.Origin, f.Contribution)
			case SideDestination:
				result.Destination = append(result.Destination, f.Contribution)
			default:
				result.Transit = append(result.Transit, f.Contribution)
			}
		}
	}

	result.Score = clamp(total, 0, MaxZoneScore)
	return result
}
