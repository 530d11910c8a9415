package rewardoracle_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roampoint/tourguide/internal/adapters/rewardoracle"
	"github.com/roampoint/tourguide/internal/domain"
)

type countingOracle struct {
	t *testing.T

	points int
	err    error

	mu    sync.Mutex
	calls int
}

func (o *countingOracle) GetRewardPoints(ctx context.Context, attractionID, userID uuid.UUID) (int, error) {
	o.t.Helper()

	o.mu.Lock()
	o.calls++
	o.mu.Unlock()

	return o.points, o.err
}

func (o *countingOracle) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func TestSimulated(t *testing.T) {
	t.Parallel()

	t.Run("points are always in the 1-1000 range", func(t *testing.T) {
		t.Parallel()

		oracle := rewardoracle.NewSimulated(1, 0)
		for i := 0; i < 100; i++ {
			points, err := oracle.GetRewardPoints(context.Background(), uuid.New(), uuid.New())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, points, 1)
			assert.LessOrEqual(t, points, 1000)
		}
	})

	t.Run("latency honors context cancellation", func(t *testing.T) {
		t.Parallel()

		oracle := rewardoracle.NewSimulated(1, time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err := oracle.GetRewardPoints(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("repeated lookups for one pairing hit the delegate once", func(t *testing.T) {
		t.Parallel()

		delegate := &countingOracle{t: t, points: 42}
		cached, stop := rewardoracle.NewCached(delegate, time.Minute)
		defer stop()

		attractionID := uuid.New()
		userID := uuid.New()

		for i := 0; i < 5; i++ {
			points, err := cached.GetRewardPoints(ctx, attractionID, userID)
			require.NoError(t, err)
			assert.Equal(t, 42, points)
		}

		assert.Equal(t, 1, delegate.callCount())
	})

	t.Run("distinct pairings are cached independently", func(t *testing.T) {
		t.Parallel()

		delegate := &countingOracle{t: t, points: 42}
		cached, stop := rewardoracle.NewCached(delegate, time.Minute)
		defer stop()

		userID := uuid.New()
		_, err := cached.GetRewardPoints(ctx, uuid.New(), userID)
		require.NoError(t, err)
		_, err = cached.GetRewardPoints(ctx, uuid.New(), userID)
		require.NoError(t, err)

		assert.Equal(t, 2, delegate.callCount())
	})

	t.Run("delegate failures are not cached", func(t *testing.T) {
		t.Parallel()

		delegate := &countingOracle{t: t, err: domain.ErrTemporarilyUnavailable}
		cached, stop := rewardoracle.NewCached(delegate, time.Minute)
		defer stop()

		attractionID := uuid.New()
		userID := uuid.New()

		_, err := cached.GetRewardPoints(ctx, attractionID, userID)
		require.ErrorIs(t, err, domain.ErrTemporarilyUnavailable)

		delegate.err = nil
		delegate.points = 7

		points, err := cached.GetRewardPoints(ctx, attractionID, userID)
		require.NoError(t, err)
		assert.Equal(t, 7, points)
		assert.Equal(t, 2, delegate.callCount())
	})
}

func TestRateLimited(t *testing.T) {
	t.Parallel()

	t.Run("passes results through within the budget", func(t *testing.T) {
		t.Parallel()

		delegate := &countingOracle{t: t, points: 13}
		limited := rewardoracle.NewRateLimited(delegate, rewardoracle.RefillPerSecond(1000), rewardoracle.BurstSize(10))

		points, err := limited.GetRewardPoints(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 13, points)
	})

	t.Run("a blocked wait honors context cancellation", func(t *testing.T) {
		t.Parallel()

		delegate := &countingOracle{t: t, points: 13}
		// Burst of 1 with a glacial refill: the second call must wait.
		limited := rewardoracle.NewRateLimited(delegate, rewardoracle.RefillPerSecond(1), rewardoracle.BurstSize(1))

		_, err := limited.GetRewardPoints(context.Background(), uuid.New(), uuid.New())
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		_, err = limited.GetRewardPoints(ctx, uuid.New(), uuid.New())
		require.Error(t, err)
		assert.Equal(t, 1, delegate.callCount())
	})
}
