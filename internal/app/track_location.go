package app

import (
	"context"
	"fmt"

	"github.com/roampoint/tourguide/internal/adapters/locationprovider"
	"github.com/roampoint/tourguide/internal/domain"
)

// TrackUserLocation records the user's current position and immediately runs a
// reward sweep over the updated history, returning the new VisitedLocation.
type TrackUserLocation func(ctx context.Context, user *domain.User) (domain.VisitedLocation, error)

func BuildTrackUserLocation(provider locationprovider.LocationProvider, calculateRewards CalculateRewards) TrackUserLocation {
	return func(ctx context.Context, user *domain.User) (domain.VisitedLocation, error) {
		visitedLocation, err := provider.GetUserLocation(ctx, user.ID)
		if err != nil {
			// NOTE: LocationProvider implementations handle their own error reporting
			return domain.VisitedLocation{}, fmt.Errorf("could not get user location: %w", err)
		}

		user.AddVisitedLocation(visitedLocation)

		// The sweep runs on the history including the location recorded above,
		// never on a stale snapshot.
		if err := calculateRewards(ctx, user); err != nil {
			// The location stays recorded; only the reward sweep is degraded.
			return visitedLocation, fmt.Errorf("tracked location but reward sweep failed: %w", err)
		}

		return visitedLocation, nil
	}
}
