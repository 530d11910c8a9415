package locationprovider

import (
	"context"

	"github.com/google/uuid"

	"github.com/roampoint/tourguide/internal/domain"
)

type LocationProvider interface {
	// Returns the user's current position. The call may block for a
	// non-trivial time; implementations must be safe for concurrent calls
	// across different users.
	//
	// Raises domain.ErrTemporarilyUnavailable for errors believed to be
	// intermittent. The call may be retried later.
	GetUserLocation(ctx context.Context, userID uuid.UUID) (domain.VisitedLocation, error)
}
