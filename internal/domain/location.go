package domain

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	Latitude  float64
	Longitude float64
}

// VisitedLocation is a single timestamped coordinate recorded for a user.
// Immutable once appended to a user's history.
type VisitedLocation struct {
	UserID      uuid.UUID
	Location    Location
	TimeVisited time.Time
}
