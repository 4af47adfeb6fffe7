// Package jsongate validates a directory of JSON user records and copies
// each record, byte for byte, into a valid or an invalid directory.
//
// Example usage:
//
//	cfg := jsongate.DefaultConfig()
//	cfg.SourceDir = "./test_data"
//	summary, err := jsongate.Run(context.Background(), cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(summary.Valid, summary.Invalid)
package jsongate

import (
	"context"
	"fmt"

	"github.com/bft-labs/jsongate/internal/adapters/fs"
	logAdapter "github.com/bft-labs/jsongate/internal/adapters/log"
	"github.com/bft-labs/jsongate/internal/app"
	"github.com/bft-labs/jsongate/internal/domain"
	"github.com/bft-labs/jsongate/internal/ports"
	"github.com/bft-labs/jsongate/internal/schema"
)

// Summary is the aggregate outcome of one run.
type Summary = domain.RunSummary

// Result is the terminal outcome of a single record.
type Result = domain.ProcessingResult

// Outcome is the validation verdict for a single record.
type Outcome = domain.ValidationOutcome

// Logger is the interface for structured logging.
type Logger = ports.Logger

// Observer receives every result and the final summary of a run.
type Observer = ports.ResultObserver

// Errors returned by Run, checked with errors.Is.
var (
	ErrInvalidConfig          = domain.ErrInvalidConfig
	ErrDestinationUnavailable = domain.ErrDestinationUnavailable
)

// Config holds the configuration for one run.
type Config struct {
	// SourceDir holds the records to check.
	SourceDir string

	// Suffix limits which files are records. Empty means every regular file.
	// Default: ".json"
	SourceSuffix string

	// ValidDir and InvalidDir receive copies of the records. They must exist
	// (or CreateDirs must be set) and must differ.
	ValidDir   string
	InvalidDir string

	// CreateDirs creates missing output directories before the run.
	CreateDirs bool

	// Workers is the size of the worker pool.
	// Default: number of CPUs
	Workers int
}

// DefaultConfig returns a Config with the default directory layout.
func DefaultConfig() Config {
	return Config{
		SourceDir:    "./test_data",
		SourceSuffix: fs.DefaultSuffix,
		ValidDir:     "./output/valid_files",
		InvalidDir:   "./output/invalid_files",
		CreateDirs:   true,
		Workers:      app.DefaultWorkers(),
	}
}

// Option configures optional behavior of Run.
type Option func(*options)

type options struct {
	logger    ports.Logger
	observers []ports.ResultObserver
}

// WithLogger sets a custom logger. If not provided, nothing is logged.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver adds an observer notified of every result. Observers are
// called from a single goroutine.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs)
	}
}

// Run enumerates the source directory once and processes every record.
//
// Per-record failures are reported in the Summary, never as an error. An
// error means the run could not start (bad config, unusable output
// directories, unreadable source) or was canceled, in which case the
// partial Summary is returned alongside ctx.Err().
func Run(ctx context.Context, cfg Config, opts ...Option) (Summary, error) {
	o := options{logger: logAdapter.NewNoopLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	if cfg.Workers < 1 {
		return Summary{}, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, cfg.Workers)
	}

	source := fs.NewDirSource(cfg.SourceDir, cfg.SourceSuffix)
	dest := fs.NewDirDestination(cfg.ValidDir, cfg.InvalidDir)
	if cfg.CreateDirs {
		if err := dest.CreateAreas(); err != nil {
			return Summary{}, fmt.Errorf("%w: %v", ErrDestinationUnavailable, err)
		}
	}

	items, err := source.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	d := app.NewDispatcher(
		app.DispatcherConfig{Workers: cfg.Workers},
		source,
		schema.NewValidator(),
		dest,
		o.logger,
		o.observers...,
	)
	return d.Run(ctx, items)
}

// Validate checks a single JSON document against the user schema.
func Validate(data []byte) Outcome {
	return schema.NewValidator().Validate(data)
}
