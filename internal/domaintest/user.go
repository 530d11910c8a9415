package domaintest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roampoint/tourguide/internal/domain"
)

func NewUUID(t *testing.T) uuid.UUID {
	t.Helper()
	id, err := uuid.NewRandom()
	require.NoError(t, err)
	return id
}

func NewUser(t *testing.T, name string) *domain.User {
	t.Helper()
	return domain.NewUser(NewUUID(t), name, "000", fmt.Sprintf("%s@tourguide.com", name))
}

func VisitedLocationAt(userID uuid.UUID, latitude, longitude float64) domain.VisitedLocation {
	return domain.VisitedLocation{
		UserID:      userID,
		Location:    domain.Location{Latitude: latitude, Longitude: longitude},
		TimeVisited: time.Now(),
	}
}

func AttractionAt(t *testing.T, name string, latitude, longitude, proximityRadiusMiles float64) domain.Attraction {
	t.Helper()
	return domain.Attraction{
		ID:                   NewUUID(t),
		Name:                 name,
		City:                 "Testville",
		State:                "TS",
		Location:             domain.Location{Latitude: latitude, Longitude: longitude},
		ProximityRadiusMiles: proximityRadiusMiles,
	}
}
