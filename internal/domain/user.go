package domain

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// UserReward ties a user's visited location to the attraction it qualified
// for and the points the reward oracle granted for the pairing.
type UserReward struct {
	VisitedLocation VisitedLocation
	Attraction      Attraction
	RewardPoints    int
}

// User is owned by the process-wide registry and lives for the whole run.
//
// The location-tracking pool and the rewards pool each process a given user at
// most once per pass, but the two pools run independently and may touch the
// same user at the same time. All access to the mutable history and reward
// list therefore goes through the mutex-guarded accessors below.
type User struct {
	ID           uuid.UUID
	Name         string
	PhoneNumber  string
	EmailAddress string

	mu               sync.Mutex
	visitedLocations []VisitedLocation
	rewards          []UserReward
}

func NewUser(id uuid.UUID, name, phoneNumber, emailAddress string) *User {
	return &User{
		ID:           id,
		Name:         name,
		PhoneNumber:  phoneNumber,
		EmailAddress: emailAddress,
	}
}

// AddVisitedLocation appends to the user's history. The history is append-only
// and chronological; entries are never reordered or removed.
func (u *User) AddVisitedLocation(visitedLocation VisitedLocation) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.visitedLocations = append(u.visitedLocations, visitedLocation)
}

// VisitedLocations returns a snapshot copy of the history. Callers iterate the
// snapshot freely while tracking keeps appending.
func (u *User) VisitedLocations() []VisitedLocation {
	u.mu.Lock()
	defer u.mu.Unlock()

	locations := make([]VisitedLocation, len(u.visitedLocations))
	copy(locations, u.visitedLocations)
	return locations
}

// LastVisitedLocation returns the most recently recorded location.
func (u *User) LastVisitedLocation() (VisitedLocation, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.visitedLocations) == 0 {
		return VisitedLocation{}, fmt.Errorf("%w: user %s", ErrNoVisitedLocations, u.ID)
	}
	return u.visitedLocations[len(u.visitedLocations)-1], nil
}

// AddReward appends the reward iff the user has no reward for the same
// attraction yet, and reports whether it was added. The check and the append
// happen under one lock, so at most one reward per (user, attraction) pair can
// ever exist regardless of which workers race here.
func (u *User) AddReward(reward UserReward) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	for _, existing := range u.rewards {
		if existing.Attraction.ID == reward.Attraction.ID {
			return false
		}
	}
	u.rewards = append(u.rewards, reward)
	return true
}

// Rewards returns a snapshot copy of the user's reward list.
func (u *User) Rewards() []UserReward {
	u.mu.Lock()
	defer u.mu.Unlock()

	rewards := make([]UserReward, len(u.rewards))
	copy(rewards, u.rewards)
	return rewards
}

// RewardedAttractionIDs returns the set of attractions the user already holds
// a reward for. The rewards engine uses it to skip settled pairings up front.
func (u *User) RewardedAttractionIDs() map[uuid.UUID]struct{} {
	u.mu.Lock()
	defer u.mu.Unlock()

	ids := make(map[uuid.UUID]struct{}, len(u.rewards))
	for _, reward := range u.rewards {
		ids[reward.Attraction.ID] = struct{}{}
	}
	return ids
}
