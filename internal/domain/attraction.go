package domain

import "github.com/google/uuid"

// Attraction is a fixed point of interest. Immutable after catalog load, so it
// is safe to share across workers without synchronization.
type Attraction struct {
	ID                   uuid.UUID
	Name                 string
	City                 string
	State                string
	Location             Location
	ProximityRadiusMiles float64
}

// AttractionUserDistance is a read-only projection used to report the
// attractions closest to a given location. Recomputed per query, never stored.
type AttractionUserDistance struct {
	AttractionName     string
	AttractionLocation Location
	UserLocation       Location
	DistanceMiles      float64
	RewardPoints       int
}
