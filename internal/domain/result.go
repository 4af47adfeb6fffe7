package domain

import (
	"time"
)

// Area names a destination area.
type Area string

const (
	AreaValid   Area = "valid"
	AreaInvalid Area = "invalid"
)

// RouteResult describes where the router copied an item.
type RouteResult struct {
	Area Area
	Path string
}

// ProcessingResult is the terminal record for one item of a run.
type ProcessingResult struct {
	ItemID      string        `json:"id" yaml:"id"`
	State       ItemState     `json:"state" yaml:"state"`
	Destination string        `json:"destination,omitempty" yaml:"destination,omitempty"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
	FieldErrors FieldErrors   `json:"fieldErrors,omitempty" yaml:"fieldErrors,omitempty"`
	Err         error         `json:"-" yaml:"-"`
}

// Error returns the item error message, or an empty string.
func (r ProcessingResult) Error() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// RunSummary aggregates the results of one run.
// Totals only count items that reached a terminal state.
type RunSummary struct {
	RunID     string        `json:"runId" yaml:"runId"`
	StartedAt time.Time     `json:"startedAt" yaml:"startedAt"`
	Elapsed   time.Duration `json:"elapsed" yaml:"elapsed"`
	Workers   int           `json:"workers" yaml:"workers"`

	Total   int `json:"total" yaml:"total"`
	Valid   int `json:"valid" yaml:"valid"`
	Invalid int `json:"invalid" yaml:"invalid"`
	IOError int `json:"ioError" yaml:"ioError"`

	// Skipped counts items that were never dispatched because the run was canceled.
	Skipped  int  `json:"skipped" yaml:"skipped"`
	Canceled bool `json:"canceled" yaml:"canceled"`

	Results []ProcessingResult `json:"results,omitempty" yaml:"results,omitempty"`
}

// NewRunSummary starts a summary for a run.
func NewRunSummary(runID string, workers int, startedAt time.Time) *RunSummary {
	return &RunSummary{
		RunID:     runID,
		StartedAt: startedAt,
		Workers:   workers,
		Results:   make([]ProcessingResult, 0),
	}
}

// Add folds one result into the summary. Non-terminal results are ignored.
func (s *RunSummary) Add(r ProcessingResult) {
	switch r.State {
	case StateValid:
		s.Valid++
	case StateInvalid:
		s.Invalid++
	case StateIOError:
		s.IOError++
	default:
		return
	}
	s.Total++
	s.Results = append(s.Results, r)
}

// Finish stamps the wall-clock time of the run.
func (s *RunSummary) Finish(now time.Time) {
	s.Elapsed = now.Sub(s.StartedAt)
}

// Result returns the result for an item, if it completed.
func (s *RunSummary) Result(itemID string) (ProcessingResult, bool) {
	for _, r := range s.Results {
		if r.ItemID == itemID {
			return r, true
		}
	}
	return ProcessingResult{}, false
}
