// Package geo contains small great-circle helpers used for route geometry.
package geo

import (
	"math"

	"github.com/gokaycavdar/go-georisk/pkg/models"
)

const earthRadiusKm = 6371.0

// Haversine returns the great-circle distance between two points in kilometres.
func Haversine(a, b models.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180.0)
	dLon := (b.Lon - a.Lon) * (math.Pi / 180.0)

	lat1 := a.Lat * (math.Pi / 180.0)
	lat2 := b.Lat * (math.Pi / 180.0)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// PathLength sums the leg distances of a polyline. Fewer than two points
// have no length.
func PathLength(points []models.Coordinates) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += Haversine(points[i-1], points[i])
	}
	return total
}
