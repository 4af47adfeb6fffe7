package domain

import "fmt"

// ItemState is the processing state of a single item within a run.
type ItemState int

const (
	StatePending ItemState = iota
	StateDecoding
	StateValid
	StateInvalid
	StateIOError
)

// String returns a human-readable representation of the state.
func (s ItemState) String() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateDecoding:
		return "Decoding"
	case StateValid:
		return "Valid"
	case StateInvalid:
		return "Invalid"
	case StateIOError:
		return "IOError"
	default:
		return "Unknown"
	}
}

// MarshalText renders the state by name in reports.
func (s ItemState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no further transition is possible.
func (s ItemState) Terminal() bool {
	return s == StateValid || s == StateInvalid || s == StateIOError
}

// Transition returns next if moving from s to next is allowed.
//
// Valid transitions:
//   - Pending -> Decoding, IOError
//   - Decoding -> Valid, Invalid, IOError
func (s ItemState) Transition(next ItemState) (ItemState, error) {
	switch s {
	case StatePending:
		if next != StateDecoding && next != StateIOError {
			return s, ErrInvalidTransition
		}
	case StateDecoding:
		if !next.Terminal() {
			return s, ErrInvalidTransition
		}
	default:
		return s, ErrInvalidTransition
	}
	return next, nil
}

// MustTransition is Transition for statically known-good moves. It panics on
// an invalid transition.
func (s ItemState) MustTransition(next ItemState) ItemState {
	out, err := s.Transition(next)
	if err != nil {
		panic(fmt.Sprintf("item state %s -> %s: %v", s, next, err))
	}
	return out
}
