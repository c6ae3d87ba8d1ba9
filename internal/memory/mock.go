package memory

import (
	"context"
	"sync"
)

// WrittenEvent captures one WriteEvent call for assertions.
type WrittenEvent struct {
	Content    string
	Type       EventType
	Importance int
}

// MockStore is a scriptable Store for tests.
type MockStore struct {
	Summary  string
	ReadErr  error
	WriteErr error

	mu     sync.Mutex
	events []WrittenEvent
	reads  int
}

func (m *MockStore) ReadSummary(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.Summary, nil
}

func (m *MockStore) WriteEvent(_ context.Context, content string, typ EventType, importance int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.events = append(m.events, WrittenEvent{Content: content, Type: typ, Importance: importance})
	return nil
}

// Events returns every recorded write.
func (m *MockStore) Events() []WrittenEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]WrittenEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Reads returns how many times ReadSummary was called.
func (m *MockStore) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads
}
