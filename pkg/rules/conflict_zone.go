package rules

import (
	"fmt"

	"github.com/gokaycavdar/go-georisk/pkg/zones"
)

// ConflictZoneRule scores routes touching a country in active conflict.
type ConflictZoneRule struct {
	Table     *zones.Table
	RiskScore int
}

func NewConflictZoneRule(table *zones.Table, score int) *ConflictZoneRule {
	return &ConflictZoneRule{Table: table, RiskScore: score}
}

func (r *ConflictZoneRule) Name() string {
	return "Active Conflict Zone"
}

func (r *ConflictZoneRule) Description() string {
	return "Checks whether the origin or destination country is an active conflict zone."
}

func (r *ConflictZoneRule) Evaluate(in Input) []Finding {
	var out []Finding
	if r.Table.InConflict(in.OriginCountry) {
		out = append(out, finding(SideOrigin, r.RiskScore,
			fmt.Sprintf("Origin (%s) is in active conflict zone", r.Table.CountryName(in.OriginCountry))))
	}
	if r.Table.InConflict(in.DestCountry) {
		out = append(out, finding(SideDestination, r.RiskScore,
			fmt.Sprintf("Destination (%s) is in active conflict zone", r.Table.CountryName(in.DestCountry))))
	}
	return out
}
