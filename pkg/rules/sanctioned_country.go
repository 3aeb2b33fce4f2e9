package rules

import (
	"fmt"

	"github.com/gokaycavdar/go-georisk/pkg/zones"
)

// SanctionedCountryRule scores routes that start or end in a sanctioned country.
type SanctionedCountryRule struct {
	Table     *zones.Table
	RiskScore int // points per sanctioned endpoint
}

func NewSanctionedCountryRule(table *zones.Table, score int) *SanctionedCountryRule {
	return &SanctionedCountryRule{Table: table, RiskScore: score}
}

func (r *SanctionedCountryRule) Name() string {
	return "Sanctioned Country"
}

func (r *SanctionedCountryRule) Description() string {
	return "Checks whether the origin or destination country is under primary sanctions."
}

func (r *SanctionedCountryRule) Evaluate(in Input) []Finding {
	var out []Finding
	if r.Table.IsSanctioned(in.OriginCountry) {
		out = append(out, finding(SideOrigin, r.RiskScore,
			fmt.Sprintf("Origin (%s) is under sanctions", r.Table.CountryName(in.OriginCountry))))
	}
	if r.Table.IsSanctioned(in.DestCountry) {
		out = append(out, finding(SideDestination, r.RiskScore,
			fmt.Sprintf("Destination (%s) is under sanctions", r.Table.CountryName(in.DestCountry))))
	}
	return out
}
