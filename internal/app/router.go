package app

import (
	"context"

	"github.com/bft-labs/jsongate/internal/domain"
	"github.com/bft-labs/jsongate/internal/ports"
)

// Router copies the original bytes of an item into the area matching its
// validation outcome. Content is written as-is, never re-serialized.
type Router struct {
	dest ports.Destination
}

// NewRouter creates a router writing into dest.
func NewRouter(dest ports.Destination) *Router {
	return &Router{dest: dest}
}

// AreaFor maps an outcome to its destination area.
func AreaFor(outcome domain.ValidationOutcome) domain.Area {
	if outcome.IsValid() {
		return domain.AreaValid
	}
	return domain.AreaInvalid
}

// Route writes source into the area for outcome under itemID.
// Write failures are returned as-is and never retried.
func (r *Router) Route(ctx context.Context, itemID string, outcome domain.ValidationOutcome, source []byte) (domain.RouteResult, error) {
	area := AreaFor(outcome)
	path, err := r.dest.WriteItem(ctx, area, itemID, source)
	if err != nil {
		return domain.RouteResult{Area: area}, err
	}
	return domain.RouteResult{Area: area, Path: path}, nil
}
