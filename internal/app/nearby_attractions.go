package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/roampoint/tourguide/internal/adapters/rewardoracle"
	"github.com/roampoint/tourguide/internal/domain"
	"github.com/roampoint/tourguide/internal/geo"
)

// GetNearbyAttractions returns the attractions closest to the given visited
// location, sorted by ascending distance, each annotated with the reward value
// the oracle would grant that user for the attraction.
type GetNearbyAttractions func(ctx context.Context, visitedLocation domain.VisitedLocation) ([]domain.AttractionUserDistance, error)

func BuildGetNearbyAttractions(attractions []domain.Attraction, oracle rewardoracle.RewardOracle, count int) GetNearbyAttractions {
	return func(ctx context.Context, visitedLocation domain.VisitedLocation) ([]domain.AttractionUserDistance, error) {
		type attractionDistance struct {
			attraction domain.Attraction
			distance   float64
		}

		distances := make([]attractionDistance, 0, len(attractions))
		for _, attraction := range attractions {
			distances = append(distances, attractionDistance{
				attraction: attraction,
				distance:   geo.Distance(visitedLocation.Location, attraction.Location),
			})
		}

		sort.SliceStable(distances, func(i, j int) bool {
			return distances[i].distance < distances[j].distance
		})

		if len(distances) > count {
			distances = distances[:count]
		}

		nearby := make([]domain.AttractionUserDistance, 0, len(distances))
		for _, candidate := range distances {
			points, err := oracle.GetRewardPoints(ctx, candidate.attraction.ID, visitedLocation.UserID)
			if err != nil {
				// NOTE: RewardOracle implementations handle their own error reporting
				return nil, fmt.Errorf("could not get reward points for attraction %s: %w", candidate.attraction.ID, err)
			}

			nearby = append(nearby, domain.AttractionUserDistance{
				AttractionName:     candidate.attraction.Name,
				AttractionLocation: candidate.attraction.Location,
				UserLocation:       visitedLocation.Location,
				DistanceMiles:      candidate.distance,
				RewardPoints:       points,
			})
		}

		return nearby, nil
	}
}
