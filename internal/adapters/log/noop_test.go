package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/jsongate/internal/ports"
)

var (
	_ ports.Logger = NoopLogger{}
	_ ports.Logger = (*MemoryLogger)(nil)
	_ ports.Logger = (*ZerologAdapter)(nil)
)

func TestMemoryLogger(t *testing.T) {
	m := NewMemoryLogger()
	m.Info("item invalid", ports.String("id", "a.json"), ports.Int("n", 2))
	m.Warn("item failed")

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "a.json", entries[0].Fields["id"])
	assert.Equal(t, 2, entries[0].Fields["n"])

	assert.Len(t, m.Find("item failed"), 1)
	assert.Empty(t, m.Find("nothing"))
}

func TestMemoryLogger_Concurrent(t *testing.T) {
	m := NewMemoryLogger()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Debug("tick")
		}()
	}
	wg.Wait()
	assert.Len(t, m.Find("tick"), 20)
}
