package userregistry

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/roampoint/tourguide/internal/domain"
)

const (
	seedHistoryLength = 3
	seedMaxLatitude   = 85.05112878
	seedMaxLongitude  = 180.0
)

// SeedInternalUsers fills the registry with n synthetic users, each with a
// short random location history spread over the last week, for load tests and
// the simulation binary.
func SeedInternalUsers(registry *Registry, n int, seed int64, nowFunc func() time.Time) {
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < n; i++ {
		name := fmt.Sprintf("internalUser%d", i)
		user := domain.NewUser(
			uuid.New(),
			name,
			"000",
			fmt.Sprintf("%s@tourguide.com", name),
		)

		for j := 0; j < seedHistoryLength; j++ {
			user.AddVisitedLocation(domain.VisitedLocation{
				UserID: user.ID,
				Location: domain.Location{
					Latitude:  -seedMaxLatitude + rng.Float64()*2*seedMaxLatitude,
					Longitude: -seedMaxLongitude + rng.Float64()*2*seedMaxLongitude,
				},
				TimeVisited: nowFunc().Add(-time.Duration(rng.Intn(7*24)) * time.Hour),
			})
		}

		registry.Add(user)
	}
}
