package ports

import "context"

// RecordSource provides the items of a run.
// Implementations decide the enumeration policy (e.g. suffix filtering).
type RecordSource interface {
	// List returns the identifiers of every candidate item.
	// The returned slice is a snapshot; items are not rediscovered during a run.
	List(ctx context.Context) ([]string, error)

	// ReadItem returns the raw bytes of one item.
	// Returns an error wrapping domain.ErrNotFound if the item vanished.
	ReadItem(ctx context.Context, id string) ([]byte, error)
}
