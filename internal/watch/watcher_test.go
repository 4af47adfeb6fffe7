package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	logadapter "github.com/bft-labs/jsongate/internal/adapters/log"
)

func TestState_String(t *testing.T) {
	assert.Equal(t, "Stopped", StateStopped.String())
	assert.Equal(t, "Running", StateRunning.String())
	assert.Equal(t, "Stopping", StateStopping.String())
	assert.Equal(t, "Crashed", StateCrashed.String())
	assert.Equal(t, "Unknown", State(42).String())
}

func TestLifecycle_Transitions(t *testing.T) {
	var l lifecycle
	assert.Equal(t, StateStopped, l.get())

	_, err := l.to(StateStopping)
	assert.ErrorIs(t, err, ErrNotRunning)

	prev, err := l.to(StateRunning)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, prev)

	_, err = l.to(StateRunning)
	assert.ErrorIs(t, err, ErrAlreadyRunning)

	_, err = l.to(StateStopping)
	require.NoError(t, err)
	_, err = l.to(StateStopped)
	require.NoError(t, err)
}

func TestWatcher_TriggersDebouncedRun(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32

	w := New(Config{Dir: dir, Suffix: ".json", Debounce: 50 * time.Millisecond}, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, logadapter.NewNoopLogger())

	require.NoError(t, w.Start(context.Background()))
	assert.Equal(t, StateRunning, w.State())

	for _, name := range []string{"a.json", "b.json", "c.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(`{}`), 0o644))
	}

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Stop())
	assert.Equal(t, StateStopped, w.State())
	assert.Equal(t, int(runs.Load()), w.Runs())
}

func TestWatcher_IgnoresIrrelevantFiles(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32

	w := New(Config{Dir: dir, Suffix: ".json", Debounce: 20 * time.Millisecond}, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}, logadapter.NewNoopLogger())
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden.json"), []byte("{}"), 0o644))

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, w.Stop())
	assert.Zero(t, runs.Load())
}

func TestWatcher_RunOnStart(t *testing.T) {
	dir := t.TempDir()
	ran := make(chan struct{}, 1)

	w := New(Config{Dir: dir, RunOnStart: true}, func(ctx context.Context) error {
		ran <- struct{}{}
		return nil
	}, logadapter.NewNoopLogger())
	require.NoError(t, w.Start(context.Background()))

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an initial run")
	}
	require.NoError(t, w.Stop())
}

func TestWatcher_StartTwice(t *testing.T) {
	dir := t.TempDir()
	w := New(Config{Dir: dir}, func(context.Context) error { return nil }, logadapter.NewNoopLogger())

	require.NoError(t, w.Start(context.Background()))
	assert.ErrorIs(t, w.Start(context.Background()), ErrAlreadyRunning)
	require.NoError(t, w.Stop())
	assert.ErrorIs(t, w.Stop(), ErrNotRunning)
}

func TestWatcher_MissingDir(t *testing.T) {
	w := New(Config{Dir: filepath.Join(t.TempDir(), "nope")}, func(context.Context) error { return nil }, logadapter.NewNoopLogger())
	assert.Error(t, w.Start(context.Background()))
	assert.Equal(t, StateStopped, w.State())
}
