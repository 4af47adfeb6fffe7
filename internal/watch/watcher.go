// Package watch re-runs a batch whenever the source directory changes.
//
// Every trigger is an ordinary bounded run over a fresh enumeration of the
// directory; nothing is streamed. Bursts of file events are debounced into a
// single run, and runs never overlap.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/jsongate/internal/ports"
)

// RunFunc performs one batch run.
type RunFunc func(ctx context.Context) error

// Config holds watcher options.
type Config struct {
	// Dir is the directory to watch (not recursive).
	Dir string

	// Suffix limits which file names trigger a run. Empty matches all.
	Suffix string

	// Debounce is how long to wait after the last event before running.
	// Default: 500 milliseconds
	Debounce time.Duration

	// RunOnStart triggers a run as soon as the watcher starts.
	RunOnStart bool
}

// Watcher triggers runs on file changes in one directory.
type Watcher struct {
	cfg    Config
	run    RunFunc
	logger ports.Logger

	life   lifecycle
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	runs   int
}

// New creates a watcher. It does nothing until Start.
func New(cfg Config, run RunFunc, logger ports.Logger) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = 500 * time.Millisecond
	}
	return &Watcher{cfg: cfg, run: run, logger: logger}
}

// State returns the current lifecycle state.
func (w *Watcher) State() State {
	return w.life.get()
}

// Runs returns how many runs were triggered so far.
func (w *Watcher) Runs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.runs
}

// Start begins watching in the background.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(w.cfg.Dir); err != nil {
		fw.Close()
		return err
	}
	if _, err := w.life.to(StateRunning); err != nil {
		fw.Close()
		return err
	}

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	w.mu.Lock()
	w.cancel = cancel
	w.done = done
	w.mu.Unlock()

	w.logger.Info("watching source directory",
		ports.String("dir", w.cfg.Dir),
		ports.Duration("debounce", w.cfg.Debounce),
	)

	go func() {
		defer close(done)
		defer fw.Close()
		w.loop(loopCtx, fw)
	}()
	return nil
}

// Stop cancels the watcher and waits for an in-progress run to finish.
func (w *Watcher) Stop() error {
	if _, err := w.life.to(StateStopping); err != nil {
		if w.State() == StateCrashed {
			w.mu.Lock()
			cancel := w.cancel
			w.mu.Unlock()
			cancel()
			_, _ = w.life.to(StateStopped)
			return nil
		}
		return err
	}

	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()

	cancel()
	<-done

	_, err := w.life.to(StateStopped)
	return err
}

// Done is closed when the watch loop exits.
func (w *Watcher) Done() <-chan struct{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	if w.cfg.RunOnStart {
		w.runOnce(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				w.crash("event channel closed")
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("source change", ports.String("file", event.Name), ports.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				timer.Reset(w.cfg.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.runOnce(ctx)

		case err, ok := <-fw.Errors:
			if !ok {
				w.crash("error channel closed")
				return
			}
			w.logger.Error("watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return w.cfg.Suffix == "" || strings.HasSuffix(name, w.cfg.Suffix)
}

func (w *Watcher) runOnce(ctx context.Context) {
	w.mu.Lock()
	w.runs++
	n := w.runs
	w.mu.Unlock()

	if err := w.run(ctx); err != nil && ctx.Err() == nil {
		w.logger.Error("triggered run failed", ports.Int("run", n), ports.Err(err))
	}
}

func (w *Watcher) crash(reason string) {
	if _, err := w.life.to(StateCrashed); err == nil {
		w.logger.Error("watcher stopped unexpectedly", ports.String("reason", reason))
	}
}
