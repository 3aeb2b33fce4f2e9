package engine

import (
	"context"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

// Countries assumed when a route summary request omits them.
const (
	DefaultOriginCountry = "GB"
	DefaultDestCountry   = "US"
)

// CountryResolver maps a requester IP to an ISO country code.
type CountryResolver interface {
	CountryCode(ip string) (string, error)
}

// WithCountryResolver lets route summaries infer a missing origin
// country from the requester's IP address.
func WithCountryResolver(r CountryResolver) Option {
	return func(e *Engine) { e.countries = r }
}

// SummaryRequest is the map-view variant of a route query.
type SummaryRequest struct {
	Origin        string
	Destination   string
	Waypoints     []string
	OriginCountry string
	DestCountry   string
	OriginCoords  *models.Coordinates
	DestCoords    *models.Coordinates
	Parties       []models.Party

	// RequesterIP is used only to infer OriginCountry when it is empty.
	RequesterIP string
}

// RouteRiskSummary runs a full assessment with defaults filled in and
// returns only the headline fields.
func (e *Engine) RouteRiskSummary(ctx context.Context, callerID string, req SummaryRequest) (*models.RouteRiskSummary, error) {
	if callerID == "" {
		e.metrics.ObserveUnauthorized()
		return nil, ErrUnauthorized
	}

	q := models.RouteQuery{
		Origin:        req.Origin,
		Destination:   req.Destination,
		OriginCountry: req.OriginCountry,
		DestCountry:   req.DestCountry,
		OriginCoords:  req.OriginCoords,
		DestCoords:    req.DestCoords,
		TransitPoints: req.Waypoints,
		Parties:       req.Parties,
	}
	if q.OriginCountry == "" {
		q.OriginCountry = e.inferOriginCountry(req.RequesterIP)
	}
	if q.DestCountry == "" {
		q.DestCountry = DefaultDestCountry
	}

	a, err := e.AssessRouteRisk(ctx, callerID, q)
	if err != nil {
		return nil, err
	}
	return &models.RouteRiskSummary{
		Score:       a.Score,
		Level:       a.Level,
		Advisory:    a.Advisory,
		LastUpdated: a.LastUpdated,
	}, nil
}

func (e *Engine) inferOriginCountry(ip string) string {
	if e.countries == nil || ip == "" {
		return DefaultOriginCountry
	}
	code, err := e.countries.CountryCode(ip)
	if err != nil || code == "" {
		e.logger.Debug("origin country lookup failed; using default", "error", err)
		return DefaultOriginCountry
	}
	return code
}
