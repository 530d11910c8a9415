package attractioncatalog

import (
	"context"

	"github.com/roampoint/tourguide/internal/domain"
)

type AttractionCatalog interface {
	// Returns the full list of known attractions. Called once at startup; the
	// returned attractions are immutable.
	GetAttractions(ctx context.Context) ([]domain.Attraction, error)
}
