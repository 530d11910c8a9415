package rewardoracle

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type rateLimitedOracle struct {
	limiter  *rate.Limiter
	delegate RewardOracle
}

func (o *rateLimitedOracle) GetRewardPoints(ctx context.Context, attractionID, userID uuid.UUID) (int, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter wait: %w", err)
	}
	return o.delegate.GetRewardPoints(ctx, attractionID, userID)
}

type RefillPerSecond int
type BurstSize int

// NewRateLimited wraps an oracle with a shared token bucket so that a full
// 100k-user sweep cannot overload the reward backend. Wait blocks the calling
// worker and honors context cancellation, keeping the pipeline free to drain.
func NewRateLimited(delegate RewardOracle, refillPerSecond RefillPerSecond, burstSize BurstSize) RewardOracle {
	return &rateLimitedOracle{
		limiter:  rate.NewLimiter(rate.Limit(refillPerSecond), int(burstSize)),
		delegate: delegate,
	}
}
