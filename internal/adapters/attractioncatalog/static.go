package attractioncatalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/roampoint/tourguide/internal/domain"
)

type staticEntry struct {
	name      string
	city      string
	state     string
	latitude  float64
	longitude float64
}

// The well-known US landmark set served by the upstream attraction feed.
var staticEntries = []staticEntry{
	{"Disneyland", "Anaheim", "CA", 33.817595, -117.922008},
	{"Jackson Hole", "Jackson Hole", "WY", 43.582767, -110.821999},
	{"Mojave National Preserve", "Kelso", "CA", 35.141689, -115.510399},
	{"Joshua Tree National Park", "Joshua Tree National Park", "CA", 33.881866, -115.90065},
	{"Buffalo National River", "St Joe", "AR", 35.985512, -92.757652},
	{"Hot Springs National Park", "Hot Springs", "AR", 34.52153, -93.042267},
	{"Kartchner Caverns State Park", "Benson", "AZ", 31.837551, -110.347382},
	{"Legend Valley", "Thornville", "OH", 39.937778, -82.40667},
	{"McKinley Tower", "Anchorage", "AK", 61.218887, -149.877502},
	{"Flatiron Building", "New York City", "NY", 40.741112, -73.989723},
	{"Fallingwater", "Mill Run", "PA", 39.906113, -79.468056},
	{"Union Station", "Washington D.C.", "DC", 38.897095, -77.006332},
	{"Roger Dean Stadium", "Jupiter", "FL", 26.890959, -80.116577},
	{"Texas Memorial Stadium", "Austin", "TX", 30.283682, -97.732536},
	{"Bryce Canyon National Park", "Bryce Canyon City", "UT", 37.593048, -112.187332},
	{"Zoo Tampa at Lowry Park", "Tampa", "FL", 28.013056, -82.469444},
	{"Franklin Park Zoo", "Boston", "MA", 42.302601, -71.086731},
	{"El Yunque National Forest", "Rio Grande", "PR", 18.295233, -65.799988},
	{"Bronx Zoo", "Bronx", "NY", 40.852905, -73.872971},
	{"Cinderella Castle", "Orlando", "FL", 28.419411, -81.5812},
}

type staticCatalog struct {
	attractions []domain.Attraction
}

func (c *staticCatalog) GetAttractions(_ context.Context) ([]domain.Attraction, error) {
	return c.attractions, nil
}

// NewStatic builds the static catalog, stamping every attraction with the
// configured reward-eligibility radius. Attraction IDs are stable for the
// lifetime of the catalog instance.
func NewStatic(proximityRadiusMiles float64) AttractionCatalog {
	attractions := make([]domain.Attraction, 0, len(staticEntries))
	for _, entry := range staticEntries {
		attractions = append(attractions, domain.Attraction{
			ID:                   uuid.New(),
			Name:                 entry.name,
			City:                 entry.city,
			State:                entry.state,
			Location:             domain.Location{Latitude: entry.latitude, Longitude: entry.longitude},
			ProximityRadiusMiles: proximityRadiusMiles,
		})
	}
	return &staticCatalog{attractions: attractions}
}
