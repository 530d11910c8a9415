package geo

import (
	"math"

	"github.com/roampoint/tourguide/internal/domain"
)

const (
	statuteMilesPerNauticalMile = 1.15077945
	nauticalMilesPerDegree      = 60
)

// Distance returns the great-circle distance between two points in statute miles.
//
// NaN or out-of-range coordinates propagate as NaN rather than panicking, so
// callers can treat invalid input as "never within range" of anything.
func Distance(a, b domain.Location) float64 {
	lat1 := toRadians(a.Latitude)
	lon1 := toRadians(a.Longitude)
	lat2 := toRadians(b.Latitude)
	lon2 := toRadians(b.Longitude)

	cosAngle := math.Sin(lat1)*math.Sin(lat2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon1-lon2)

	// Rounding can push the cosine marginally outside [-1, 1] for (near-)identical
	// points, which would turn a zero distance into NaN. Min/Max both propagate NaN.
	angle := math.Acos(math.Min(1, math.Max(-1, cosAngle)))

	nauticalMiles := nauticalMilesPerDegree * toDegrees(angle)
	return statuteMilesPerNauticalMile * nauticalMiles
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func toDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
