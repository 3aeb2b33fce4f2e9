package rules

import "github.com/gokaycavdar/go-georisk/pkg/models"

func finding(side Side, value int, factor string) Finding {
	return Finding{
		Side:         side,
		Contribution: models.Contribution{Value: value, Factor: factor},
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
