package log

import (
	"sync"

	"github.com/bft-labs/jsongate/internal/ports"
)

// NoopLogger discards everything. It is the library default when no
// logger is configured.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (NoopLogger) Debug(string, ...ports.Field) {}
func (NoopLogger) Info(string, ...ports.Field)  {}
func (NoopLogger) Warn(string, ...ports.Field)  {}
func (NoopLogger) Error(string, ...ports.Field) {}

// Entry is one message captured by a MemoryLogger.
type Entry struct {
	Level  string
	Msg    string
	Fields map[string]any
}

// MemoryLogger keeps every message in memory. Safe for concurrent use.
type MemoryLogger struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryLogger creates an empty MemoryLogger.
func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (m *MemoryLogger) Debug(msg string, fields ...ports.Field) { m.add("debug", msg, fields) }
func (m *MemoryLogger) Info(msg string, fields ...ports.Field)  { m.add("info", msg, fields) }
func (m *MemoryLogger) Warn(msg string, fields ...ports.Field)  { m.add("warn", msg, fields) }
func (m *MemoryLogger) Error(msg string, fields ...ports.Field) { m.add("error", msg, fields) }

func (m *MemoryLogger) add(level, msg string, fields []ports.Field) {
	e := Entry{Level: level, Msg: msg, Fields: make(map[string]any, len(fields))}
	for _, f := range fields {
		e.Fields[f.Key] = f.Value
	}
	m.mu.Lock()
	m.entries = append(m.entries, e)
	m.mu.Unlock()
}

// Entries returns a copy of the captured messages in arrival order.
func (m *MemoryLogger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}

// Find returns the captured messages with the given text.
func (m *MemoryLogger) Find(msg string) []Entry {
	var out []Entry
	for _, e := range m.Entries() {
		if e.Msg == msg {
			out = append(out, e)
		}
	}
	return out
}
