package rewardoracle

import (
	"context"

	"github.com/google/uuid"
)

type RewardOracle interface {
	// Returns the reward point value for a (attraction, user) pairing.
	// Latency is unbounded but finite; implementations must be safe for
	// concurrent calls.
	//
	// Raises domain.ErrTemporarilyUnavailable for errors believed to be
	// intermittent. The call may be retried later.
	GetRewardPoints(ctx context.Context, attractionID, userID uuid.UUID) (int, error)
}
