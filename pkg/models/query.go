package models

// Coordinates is a WGS84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Party is a named participant in a shipment (shipper, consignee, carrier, vessel).
type Party struct {
	Name string `json:"name" binding:"required"`

	// Type is optional. "vessel" screens against vessel records,
	// anything else is treated as a legal entity.
	Type string `json:"type,omitempty"`
}

// IsVessel reports whether the party should be screened as a vessel.
func (p Party) IsVessel() bool {
	return p.Type == "vessel"
}

// RouteQuery is the caller-supplied description of a route to assess.
//
// The engine never mutates a RouteQuery and never persists it.
type RouteQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	OriginCountry string `json:"origin_country"`
	DestCountry   string `json:"dest_country"`

	// Optional device-independent coordinates of the endpoints.
	// Only DestCoords is consulted (weather lookup).
	OriginCoords *Coordinates `json:"origin_coords,omitempty"`
	DestCoords   *Coordinates `json:"dest_coords,omitempty"`

	// TransitPoints is an ordered list of canal/strait/waypoint labels.
	TransitPoints []string `json:"transit_points,omitempty"`

	Parties []Party `json:"parties,omitempty" binding:"dive"`
}
