package locationprovider

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roampoint/tourguide/internal/domain"
)

// Coordinate bounds used by the simulated GPS device. Latitude is clamped to
// the web-mercator limit rather than the poles.
const (
	maxLatitude  = 85.05112878
	maxLongitude = 180.0
)

type simulatedProvider struct {
	nowFunc func() time.Time
	latency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func (p *simulatedProvider) GetUserLocation(ctx context.Context, userID uuid.UUID) (domain.VisitedLocation, error) {
	if p.latency > 0 {
		select {
		case <-ctx.Done():
			return domain.VisitedLocation{}, fmt.Errorf("location lookup cancelled: %w", ctx.Err())
		case <-time.After(p.latency):
		}
	}

	p.mu.Lock()
	latitude := -maxLatitude + p.rng.Float64()*2*maxLatitude
	longitude := -maxLongitude + p.rng.Float64()*2*maxLongitude
	p.mu.Unlock()

	return domain.VisitedLocation{
		UserID:      userID,
		Location:    domain.Location{Latitude: latitude, Longitude: longitude},
		TimeVisited: p.nowFunc(),
	}, nil
}

// NewSimulated returns a provider that reports uniformly random positions.
// latency is applied per call to mimic a real GPS integration; pass 0 in tests.
func NewSimulated(seed int64, latency time.Duration, nowFunc func() time.Time) LocationProvider {
	return &simulatedProvider{
		nowFunc: nowFunc,
		latency: latency,
		rng:     rand.New(rand.NewSource(seed)),
	}
}
