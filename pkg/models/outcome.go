package models

// OutcomeStatus tells whether a signal was actually checked.
type OutcomeStatus string

const (
	StatusOK       OutcomeStatus = "ok"
	StatusDegraded OutcomeStatus = "degraded"
)

// DegradeReason explains why a signal fell back to zero.
type DegradeReason string

const (
	ReasonNone                DegradeReason = ""
	ReasonUpstreamUnavailable DegradeReason = "upstream_unavailable"
	ReasonMalformedResponse   DegradeReason = "malformed_response"
	ReasonConfigMissing       DegradeReason = "config_missing"
	ReasonNoCoordinates       DegradeReason = "no_coordinates"
)

// Outcome is the result of an external signal lookup.
//
// A degraded outcome still carries a usable Value (the zero-contribution
// fallback) so callers can aggregate without branching, while Status and
// Reason keep the "could not check" case distinguishable from "no risk".
type Outcome[T any] struct {
	Value  T             `json:"value"`
	Status OutcomeStatus `json:"status"`
	Reason DegradeReason `json:"reason,omitempty"`
	Err    error         `json:"-"`
}

// Ok wraps a successfully checked value.
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, Status: StatusOK}
}

// Degraded wraps a fallback value together with the reason it was used.
func Degraded[T any](fallback T, reason DegradeReason, err error) Outcome[T] {
	return Outcome[T]{Value: fallback, Status: StatusDegraded, Reason: reason, Err: err}
}

// IsDegraded reports whether the fallback value was used.
func (o Outcome[T]) IsDegraded() bool {
	return o.Status == StatusDegraded
}
