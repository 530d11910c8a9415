package rewardoracle

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

type simulatedOracle struct {
	maxLatency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func (o *simulatedOracle) GetRewardPoints(ctx context.Context, attractionID, userID uuid.UUID) (int, error) {
	o.mu.Lock()
	points := 1 + o.rng.Intn(1000)
	var delay time.Duration
	if o.maxLatency > 0 {
		delay = time.Duration(o.rng.Int63n(int64(o.maxLatency)))
	}
	o.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return 0, fmt.Errorf("reward lookup cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
	}

	return points, nil
}

// NewSimulated returns an oracle granting a random 1-1000 points per pairing,
// sleeping up to maxLatency per call to mimic the real reward backend. Pass 0
// latency in tests.
func NewSimulated(seed int64, maxLatency time.Duration) RewardOracle {
	return &simulatedOracle{
		maxLatency: maxLatency,
		rng:        rand.New(rand.NewSource(seed)),
	}
}
