package rewardoracle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
)

type cachedOracle struct {
	cache    *ttlcache.Cache[string, int]
	delegate RewardOracle
}

func (o *cachedOracle) GetRewardPoints(ctx context.Context, attractionID, userID uuid.UUID) (int, error) {
	key := fmt.Sprintf("%s:%s", attractionID, userID)

	if item := o.cache.Get(key); item != nil {
		return item.Value(), nil
	}

	points, err := o.delegate.GetRewardPoints(ctx, attractionID, userID)
	if err != nil {
		return 0, fmt.Errorf("could not get reward points: %w", err)
	}

	o.cache.Set(key, points, ttlcache.DefaultTTL)
	return points, nil
}

// NewCached wraps an oracle with a TTL cache keyed on the (attraction, user)
// pairing. The oracle's value for a pairing is stable, so serving a cached
// value never changes reward outcomes; the TTL only bounds memory.
//
// The returned stop function must be called to release the cache janitor.
func NewCached(delegate RewardOracle, ttl time.Duration) (RewardOracle, func()) {
	pointsCache := ttlcache.New[string, int](
		ttlcache.WithTTL[string, int](ttl),
		ttlcache.WithDisableTouchOnHit[string, int](),
	)
	go pointsCache.Start()

	return &cachedOracle{
		cache:    pointsCache,
		delegate: delegate,
	}, pointsCache.Stop
}
