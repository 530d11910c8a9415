package domain_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roampoint/tourguide/internal/domain"
)

func newTestUser(t *testing.T) *domain.User {
	t.Helper()
	return domain.NewUser(uuid.New(), "testUser", "000", "testUser@tourguide.com")
}

func visitedAt(userID uuid.UUID, latitude, longitude float64) domain.VisitedLocation {
	return domain.VisitedLocation{
		UserID:   userID,
		Location: domain.Location{Latitude: latitude, Longitude: longitude},
	}
}

func TestUserVisitedLocations(t *testing.T) {
	t.Parallel()

	t.Run("history preserves append order", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		first := visitedAt(user.ID, 1, 1)
		second := visitedAt(user.ID, 2, 2)
		third := visitedAt(user.ID, 3, 3)

		user.AddVisitedLocation(first)
		user.AddVisitedLocation(second)
		user.AddVisitedLocation(third)

		require.Equal(t, []domain.VisitedLocation{first, second, third}, user.VisitedLocations())

		last, err := user.LastVisitedLocation()
		require.NoError(t, err)
		assert.Equal(t, third, last)
	})

	t.Run("snapshot is decoupled from later appends", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		user.AddVisitedLocation(visitedAt(user.ID, 1, 1))

		snapshot := user.VisitedLocations()
		user.AddVisitedLocation(visitedAt(user.ID, 2, 2))

		assert.Len(t, snapshot, 1)
		assert.Len(t, user.VisitedLocations(), 2)
	})

	t.Run("last visited location on empty history", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)

		_, err := user.LastVisitedLocation()
		require.ErrorIs(t, err, domain.ErrNoVisitedLocations)
	})
}

func TestUserAddReward(t *testing.T) {
	t.Parallel()

	attraction := domain.Attraction{
		ID:                   uuid.New(),
		Name:                 "Disneyland",
		Location:             domain.Location{Latitude: 33.817595, Longitude: -117.922008},
		ProximityRadiusMiles: 10,
	}

	t.Run("second reward for the same attraction is rejected", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		reward := domain.UserReward{
			VisitedLocation: visitedAt(user.ID, 33.817595, -117.922008),
			Attraction:      attraction,
			RewardPoints:    100,
		}

		require.True(t, user.AddReward(reward))
		require.False(t, user.AddReward(reward))

		assert.Len(t, user.Rewards(), 1)
	})

	t.Run("rewards for distinct attractions are kept", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		other := attraction
		other.ID = uuid.New()
		other.Name = "Jackson Hole"

		require.True(t, user.AddReward(domain.UserReward{Attraction: attraction, RewardPoints: 1}))
		require.True(t, user.AddReward(domain.UserReward{Attraction: other, RewardPoints: 2}))

		assert.Len(t, user.Rewards(), 2)
	})

	t.Run("concurrent workers never double-reward", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		reward := domain.UserReward{Attraction: attraction, RewardPoints: 42}

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				user.AddReward(reward)
			}()
		}
		wg.Wait()

		assert.Len(t, user.Rewards(), 1)
	})

	t.Run("rewarded attraction ids", func(t *testing.T) {
		t.Parallel()

		user := newTestUser(t)
		require.True(t, user.AddReward(domain.UserReward{Attraction: attraction, RewardPoints: 7}))

		ids := user.RewardedAttractionIDs()
		require.Len(t, ids, 1)
		_, ok := ids[attraction.ID]
		assert.True(t, ok)
	})
}
