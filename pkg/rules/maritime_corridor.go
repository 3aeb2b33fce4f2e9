package rules

import (
	"fmt"

	"github.com/gokaycavdar/go-georisk/pkg/zones"
)

// MaritimeCorridorRule scores each transit point that passes through a
// high-risk maritime corridor. Every matching transit point adds the
// score once, so a route through two corridors is scored twice.
type MaritimeCorridorRule struct {
	Table     *zones.Table
	RiskScore int
}

func NewMaritimeCorridorRule(table *zones.Table, score int) *MaritimeCorridorRule {
	return &MaritimeCorridorRule{Table: table, RiskScore: score}
}

func (r *MaritimeCorridorRule) Name() string {
	return "High-Risk Maritime Corridor"
}

func (r *MaritimeCorridorRule) Description() string {
	return "Matches transit points against high-risk straits, canals and seas."
}

func (r *MaritimeCorridorRule) Evaluate(in Input) []Finding {
	var out []Finding
	for _, point := range in.TransitPoints {
		corridor, ok := r.Table.MatchCorridor(point)
		if !ok {
			continue
		}
		out = append(out, finding(SideTransit, r.RiskScore,
			fmt.Sprintf("Transit via %s — elevated maritime risk", corridor)))
	}
	return out
}
