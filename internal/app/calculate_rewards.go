package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/roampoint/tourguide/internal/adapters/rewardoracle"
	"github.com/roampoint/tourguide/internal/domain"
	"github.com/roampoint/tourguide/internal/geo"
	"github.com/roampoint/tourguide/internal/logging"
	"github.com/roampoint/tourguide/internal/reporting"
)

// CalculateRewards sweeps a user's visited-location history against the
// attraction catalog and appends a reward for every newly qualifying
// attraction. Repeated calls on an unchanged history are no-ops.
//
// Runs inline on the calling worker; it never spawns goroutines of its own,
// so the batch pool stays the only source of concurrency.
type CalculateRewards func(ctx context.Context, user *domain.User) error

// IsWithinAttractionProximity reports whether the visited location qualifies
// for the attraction's reward.
func IsWithinAttractionProximity(visitedLocation domain.VisitedLocation, attraction domain.Attraction) bool {
	return geo.Distance(visitedLocation.Location, attraction.Location) <= attraction.ProximityRadiusMiles
}

func BuildCalculateRewards(attractions []domain.Attraction, oracle rewardoracle.RewardOracle) CalculateRewards {
	return func(ctx context.Context, user *domain.User) error {
		// Snapshot once: tracking may append while we sweep, and those entries
		// belong to the next sweep.
		visitedLocations := user.VisitedLocations()
		rewarded := user.RewardedAttractionIDs()

		// Oracle failures are isolated per pairing: the sweep continues and
		// the failed pairings stay eligible for the next sweep.
		var errs []error
		for _, attraction := range attractions {
			if _, ok := rewarded[attraction.ID]; ok {
				continue
			}

			for _, visitedLocation := range visitedLocations {
				if !IsWithinAttractionProximity(visitedLocation, attraction) {
					continue
				}

				points, err := oracle.GetRewardPoints(ctx, attraction.ID, user.ID)
				if err != nil {
					err = fmt.Errorf("could not get reward points for attraction %s: %w", attraction.ID, err)
					reporting.Report(ctx, err, map[string]string{"attraction": attraction.Name})
					errs = append(errs, err)
					break
				}

				added := user.AddReward(domain.UserReward{
					VisitedLocation: visitedLocation,
					Attraction:      attraction,
					RewardPoints:    points,
				})
				if !added {
					// A concurrent sweep settled this attraction first.
					logging.FromContext(ctx).InfoContext(ctx, "Reward already recorded", "attraction", attraction.Name)
				}
				break
			}
		}

		if len(errs) > 0 {
			return fmt.Errorf("reward sweep for user %s: %w", user.ID, errors.Join(errs...))
		}
		return nil
	}
}
