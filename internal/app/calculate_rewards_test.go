package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roampoint/tourguide/internal/app"
	"github.com/roampoint/tourguide/internal/domain"
	"github.com/roampoint/tourguide/internal/domaintest"
)

type mockRewardOracle struct {
	t *testing.T

	points       int
	errByAttract map[uuid.UUID]error

	mu    sync.Mutex
	calls int
}

func (m *mockRewardOracle) GetRewardPoints(ctx context.Context, attractionID, userID uuid.UUID) (int, error) {
	m.t.Helper()

	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if err, ok := m.errByAttract[attractionID]; ok {
		return 0, err
	}
	return m.points, nil
}

func (m *mockRewardOracle) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestCalculateRewards(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("location at attraction coordinates earns exactly one reward", func(t *testing.T) {
		t.Parallel()

		attraction := domaintest.AttractionAt(t, "Disneyland", 33.817595, -117.922008, 10)
		oracle := &mockRewardOracle{t: t, points: 500}
		calculateRewards := app.BuildCalculateRewards([]domain.Attraction{attraction}, oracle)

		user := domaintest.NewUser(t, "jon")
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, attraction.Location.Latitude, attraction.Location.Longitude))

		require.NoError(t, calculateRewards(ctx, user))

		rewards := user.Rewards()
		require.Len(t, rewards, 1)
		assert.Equal(t, attraction.ID, rewards[0].Attraction.ID)
		assert.Equal(t, 500, rewards[0].RewardPoints)
	})

	t.Run("repeated sweeps with unchanged history add nothing", func(t *testing.T) {
		t.Parallel()

		attraction := domaintest.AttractionAt(t, "Disneyland", 33.817595, -117.922008, 10)
		oracle := &mockRewardOracle{t: t, points: 500}
		calculateRewards := app.BuildCalculateRewards([]domain.Attraction{attraction}, oracle)

		user := domaintest.NewUser(t, "jon")
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, attraction.Location.Latitude, attraction.Location.Longitude))

		require.NoError(t, calculateRewards(ctx, user))
		require.NoError(t, calculateRewards(ctx, user))

		assert.Len(t, user.Rewards(), 1)
		// The settled pairing is skipped before the oracle is consulted.
		assert.Equal(t, 1, oracle.callCount())
	})

	t.Run("far away location earns nothing", func(t *testing.T) {
		t.Parallel()

		attraction := domaintest.AttractionAt(t, "Disneyland", 33.817595, -117.922008, 10)
		oracle := &mockRewardOracle{t: t, points: 500}
		calculateRewards := app.BuildCalculateRewards([]domain.Attraction{attraction}, oracle)

		user := domaintest.NewUser(t, "jon")
		// Roughly 1000 miles east of the attraction.
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, 33.817595, -100.0))

		require.NoError(t, calculateRewards(ctx, user))

		assert.Empty(t, user.Rewards())
		assert.Equal(t, 0, oracle.callCount())
	})

	t.Run("one failing pairing does not block the others", func(t *testing.T) {
		t.Parallel()

		disneyland := domaintest.AttractionAt(t, "Disneyland", 33.817595, -117.922008, 10)
		jacksonHole := domaintest.AttractionAt(t, "Jackson Hole", 43.582767, -110.821999, 10)
		oracle := &mockRewardOracle{
			t:      t,
			points: 500,
			errByAttract: map[uuid.UUID]error{
				disneyland.ID: domain.ErrTemporarilyUnavailable,
			},
		}
		calculateRewards := app.BuildCalculateRewards([]domain.Attraction{disneyland, jacksonHole}, oracle)

		user := domaintest.NewUser(t, "jon")
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, disneyland.Location.Latitude, disneyland.Location.Longitude))
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, jacksonHole.Location.Latitude, jacksonHole.Location.Longitude))

		err := calculateRewards(ctx, user)
		require.ErrorIs(t, err, domain.ErrTemporarilyUnavailable)

		rewards := user.Rewards()
		require.Len(t, rewards, 1)
		assert.Equal(t, jacksonHole.ID, rewards[0].Attraction.ID)

		// The failed pairing stays eligible and settles on the next sweep.
		oracle.errByAttract = nil
		require.NoError(t, calculateRewards(ctx, user))
		assert.Len(t, user.Rewards(), 2)
	})

	t.Run("multiple qualifying locations for one attraction earn a single reward", func(t *testing.T) {
		t.Parallel()

		attraction := domaintest.AttractionAt(t, "Disneyland", 33.817595, -117.922008, 10)
		oracle := &mockRewardOracle{t: t, points: 500}
		calculateRewards := app.BuildCalculateRewards([]domain.Attraction{attraction}, oracle)

		user := domaintest.NewUser(t, "jon")
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, attraction.Location.Latitude, attraction.Location.Longitude))
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, attraction.Location.Latitude+0.01, attraction.Location.Longitude))

		require.NoError(t, calculateRewards(ctx, user))

		assert.Len(t, user.Rewards(), 1)
	})
}

func TestIsWithinAttractionProximity(t *testing.T) {
	t.Parallel()

	attraction := domaintest.AttractionAt(t, "Disneyland", 33.817595, -117.922008, 10)

	t.Run("exact coordinates are within proximity", func(t *testing.T) {
		t.Parallel()

		visited := domaintest.VisitedLocationAt(uuid.New(), attraction.Location.Latitude, attraction.Location.Longitude)
		assert.True(t, app.IsWithinAttractionProximity(visited, attraction))
	})

	t.Run("a location outside the radius is not", func(t *testing.T) {
		t.Parallel()

		visited := domaintest.VisitedLocationAt(uuid.New(), 43.582767, -110.821999)
		assert.False(t, app.IsWithinAttractionProximity(visited, attraction))
	})
}

func TestCalculateRewardsContext(t *testing.T) {
	t.Parallel()

	t.Run("oracle context errors surface to the caller", func(t *testing.T) {
		t.Parallel()

		attraction := domaintest.AttractionAt(t, "Disneyland", 33.817595, -117.922008, 10)
		oracle := &mockRewardOracle{
			t:            t,
			errByAttract: map[uuid.UUID]error{attraction.ID: context.Canceled},
		}
		calculateRewards := app.BuildCalculateRewards([]domain.Attraction{attraction}, oracle)

		user := domaintest.NewUser(t, "jon")
		user.AddVisitedLocation(domaintest.VisitedLocationAt(user.ID, attraction.Location.Latitude, attraction.Location.Longitude))

		err := calculateRewards(context.Background(), user)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	})
}
