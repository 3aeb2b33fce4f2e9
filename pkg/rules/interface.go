package rules

import "github.com/gokaycavdar/go-georisk/pkg/models"

// Side tells which part of the route a finding belongs to.
type Side int

const (
	SideOrigin Side = iota
	SideDestination
	SideTransit
)

// Input is the slice of a route query that zone rules look at.
type Input struct {
	OriginCountry string
	DestCountry   string
	TransitPoints []string
}

// Finding is a contribution tagged with the route side it scores.
type Finding struct {
	Side Side
	models.Contribution
}

// Rule is the interface every zone rule implements.
type Rule interface {
	// Unique name of the rule, e.g. "Sanctioned Country".
	Name() string

	// Short text describing what the rule checks.
	Description() string

	// Evaluate returns the findings for in, in a stable order.
	// Rules are pure: no I/O and no randomness.
	Evaluate(in Input) []Finding
}
