package geo

import "github.com/golang/geo/s2"

const (
	// EarthRadiusMeters is the Earth's mean radius. Great-circle distances
	// over the mean radius stay within 0.5% of the WGS84 ellipsoid value,
	// which is accurate enough for venue ranking at city scale.
	EarthRadiusMeters = 6371000.0
)

// HaversineDistance calculates the great-circle distance between two
// points in meters.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}
