package ports

import "github.com/bft-labs/jsongate/internal/domain"

// ResultObserver is notified once per finished item and once per run.
// Calls are made from a single collector goroutine.
type ResultObserver interface {
	OnResult(runID string, result domain.ProcessingResult)
	OnRunComplete(summary domain.RunSummary)
}
