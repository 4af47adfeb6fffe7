package ports

import (
	"context"

	"github.com/bft-labs/jsongate/internal/domain"
)

// Destination receives routed copies of item bytes.
type Destination interface {
	// CheckAreas verifies that both areas are usable before a run starts.
	// Returns an error wrapping domain.ErrDestinationUnavailable otherwise.
	CheckAreas(ctx context.Context) error

	// WriteItem stores data under id in the given area and returns the path written.
	// Errors wrap domain.ErrDestinationUnavailable or domain.ErrWriteFailed.
	WriteItem(ctx context.Context, area domain.Area, id string, data []byte) (string, error)
}
