package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bft-labs/jsongate/internal/domain"
	"github.com/bft-labs/jsongate/internal/ports"
)

// Validator turns raw item bytes into a validation outcome.
// *schema.Validator satisfies this interface.
type Validator interface {
	Validate(data []byte) domain.ValidationOutcome
}

// DispatcherConfig contains configuration for a Dispatcher.
type DispatcherConfig struct {
	// Workers is the fixed size of the worker pool. Must be at least 1.
	Workers int
}

// DefaultWorkers returns the parallelism available to this process, which
// honors GOMAXPROCS and container CPU limits.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Dispatcher runs validate-and-route over a fixed item list with a bounded
// worker pool and reduces the per-item results into a RunSummary.
type Dispatcher struct {
	config    DispatcherConfig
	source    ports.RecordSource
	validator Validator
	dest      ports.Destination
	router    *Router
	logger    ports.Logger
	observers []ports.ResultObserver

	newRunID func() string
	now      func() time.Time
}

// NewDispatcher creates a dispatcher with the given dependencies.
func NewDispatcher(
	config DispatcherConfig,
	source ports.RecordSource,
	validator Validator,
	dest ports.Destination,
	logger ports.Logger,
	observers ...ports.ResultObserver,
) *Dispatcher {
	return &Dispatcher{
		config:    config,
		source:    source,
		validator: validator,
		dest:      dest,
		router:    NewRouter(dest),
		logger:    logger,
		observers: observers,
		newRunID:  uuid.NewString,
		now:       time.Now,
	}
}

// checkConfig reports configuration-level problems before any item runs.
func (d *Dispatcher) checkConfig(items []string) error {
	if d.config.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", domain.ErrInvalidConfig, d.config.Workers)
	}
	if d.source == nil || d.validator == nil || d.dest == nil {
		return fmt.Errorf("%w: source, validator and destination are required", domain.ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(items))
	for _, id := range items {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate item id %q", domain.ErrInvalidConfig, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Run processes items and returns the run summary.
//
// Configuration errors and unusable destination areas are returned before
// any item is processed. Per-item failures never surface as an error; they are
// recorded in the summary. When ctx is canceled no new items are dispatched,
// in-flight items finish, and Run returns the partial summary together with
// the context error.
func (d *Dispatcher) Run(ctx context.Context, items []string) (domain.RunSummary, error) {
	if err := d.checkConfig(items); err != nil {
		return domain.RunSummary{}, err
	}
	if err := d.dest.CheckAreas(ctx); err != nil {
		return domain.RunSummary{}, err
	}

	summary := domain.NewRunSummary(d.newRunID(), d.config.Workers, d.now())
	d.logger.Info("run started",
		ports.String("run_id", summary.RunID),
		ports.Int("items", len(items)),
		ports.Int("workers", d.config.Workers),
	)

	workers := min(d.config.Workers, max(len(items), 1))
	queue := make(chan string)
	results := make(chan domain.ProcessingResult, workers)

	// In-flight items must finish even after ctx is canceled.
	itemCtx := context.WithoutCancel(ctx)

	var g errgroup.Group
	g.Go(func() error {
		defer close(queue)
		for _, id := range items {
			if ctx.Err() != nil {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case queue <- id:
			}
		}
		return nil
	})
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for id := range queue {
				// The producer may win a send against ctx.Done; an item
				// received after cancellation is left undispatched.
				if ctx.Err() != nil {
					continue
				}
				results <- d.process(itemCtx, id)
			}
			return nil
		})
	}
	go func() {
		_ = g.Wait()
		close(results)
	}()

	for res := range results {
		summary.Add(res)
		d.logResult(summary.RunID, res)
		for _, o := range d.observers {
			o.OnResult(summary.RunID, res)
		}
	}

	summary.Finish(d.now())
	summary.Skipped = len(items) - summary.Total
	summary.Canceled = summary.Skipped > 0 && ctx.Err() != nil

	d.logger.Info("run complete",
		ports.String("run_id", summary.RunID),
		ports.Int("total", summary.Total),
		ports.Int("valid", summary.Valid),
		ports.Int("invalid", summary.Invalid),
		ports.Int("io_errors", summary.IOError),
		ports.Int("skipped", summary.Skipped),
		ports.Duration("elapsed", summary.Elapsed),
	)
	for _, o := range d.observers {
		o.OnRunComplete(*summary)
	}

	if summary.Canceled {
		return *summary, ctx.Err()
	}
	return *summary, nil
}

// process runs one item through read, validate and route.
func (d *Dispatcher) process(ctx context.Context, id string) domain.ProcessingResult {
	start := time.Now()
	state := domain.StatePending
	res := domain.ProcessingResult{ItemID: id}

	data, err := d.source.ReadItem(ctx, id)
	if err != nil {
		res.State = state.MustTransition(domain.StateIOError)
		res.Err = err
		res.Elapsed = time.Since(start)
		return res
	}

	state = state.MustTransition(domain.StateDecoding)
	outcome := d.validator.Validate(data)
	res.FieldErrors = outcome.Errors

	routed, err := d.router.Route(ctx, id, outcome, data)
	if err != nil {
		res.State = state.MustTransition(domain.StateIOError)
		res.Err = err
	} else {
		res.State = state.MustTransition(outcome.Kind())
		res.Destination = routed.Path
	}
	res.Elapsed = time.Since(start)
	return res
}

func (d *Dispatcher) logResult(runID string, res domain.ProcessingResult) {
	switch res.State {
	case domain.StateValid:
		d.logger.Debug("item valid",
			ports.String("run_id", runID),
			ports.String("id", res.ItemID),
			ports.String("destination", res.Destination),
			ports.Duration("elapsed", res.Elapsed),
		)
	case domain.StateInvalid:
		d.logger.Info("item invalid",
			ports.String("run_id", runID),
			ports.String("id", res.ItemID),
			ports.Strings("fields", res.FieldErrors.Paths()),
			ports.String("reason", res.FieldErrors.Error()),
		)
	default:
		d.logger.Warn("item failed",
			ports.String("run_id", runID),
			ports.String("id", res.ItemID),
			ports.Err(res.Err),
		)
	}
}
