package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the jsongate domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrInvalidConfig is returned when a run is configured incorrectly
	// (zero workers, missing source, identical destination areas).
	ErrInvalidConfig = errors.New("jsongate: invalid configuration")

	// ErrDestinationUnavailable is returned when a destination area does not
	// exist or is not a directory.
	ErrDestinationUnavailable = errors.New("jsongate: destination unavailable")

	// ErrNotFound is returned when an item vanished between enumeration and read.
	ErrNotFound = errors.New("jsongate: item not found")

	// ErrWriteFailed is returned when copying an item into an area fails.
	ErrWriteFailed = errors.New("jsongate: write failed")

	// ErrDecode marks input bytes that are not a well-formed record.
	ErrDecode = errors.New("jsongate: decode error")

	// ErrInvalidTransition is returned when an item state change is not allowed.
	ErrInvalidTransition = errors.New("jsongate: invalid item state transition")
)

// ItemError wraps an underlying per-item error with the operation that
// failed and the item it belongs to.
type ItemError struct {
	Op     string // "read", "write", "route"
	ItemID string
	Err    error
}

func (e *ItemError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.ItemID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.ItemID, e.Err)
}

func (e *ItemError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewItemError builds an ItemError. It returns nil when err is nil.
func NewItemError(op, itemID string, err error) error {
	if err == nil {
		return nil
	}
	return &ItemError{Op: op, ItemID: itemID, Err: err}
}
