package watch

import (
	"errors"
	"sync"
)

var (
	// ErrAlreadyRunning is returned when Start is called on a running watcher.
	ErrAlreadyRunning = errors.New("watch: already running")

	// ErrNotRunning is returned when Stop is called on a stopped watcher.
	ErrNotRunning = errors.New("watch: not running")
)

// State is the lifecycle state of a Watcher.
type State int

const (
	StateStopped State = iota
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// transitions lists the allowed moves out of each state.
var transitions = map[State][]State{
	StateStopped:  {StateRunning},
	StateRunning:  {StateStopping, StateCrashed},
	StateStopping: {StateStopped},
	StateCrashed:  {StateRunning, StateStopped},
}

// lifecycle guards the watcher state machine.
type lifecycle struct {
	mu    sync.RWMutex
	state State
}

func (l *lifecycle) get() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// to moves to next and returns the previous state.
func (l *lifecycle) to(next State) (State, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev := l.state
	for _, allowed := range transitions[prev] {
		if allowed == next {
			l.state = next
			return prev, nil
		}
	}
	if prev == StateRunning || prev == StateStopping {
		return prev, ErrAlreadyRunning
	}
	return prev, ErrNotRunning
}
