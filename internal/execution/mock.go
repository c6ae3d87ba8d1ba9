package execution

import (
	"context"
	"sync"
)

// MockTool is a scriptable tool for tests. It records every invocation
// so tests can assert which steps actually ran.
type MockTool struct {
	ToolName string
	Output   string
	Err      error

	mu    sync.Mutex
	calls []map[string]string
}

// NewMockTool creates a mock tool answering for the given action type.
func NewMockTool(name string) *MockTool {
	return &MockTool{ToolName: name}
}

func (m *MockTool) Name() string { return m.ToolName }

func (m *MockTool) Run(_ context.Context, params map[string]string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, params)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Output, nil
}

// Calls returns the parameter sets of every invocation so far.
func (m *MockTool) Calls() []map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]map[string]string, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times the tool was invoked.
func (m *MockTool) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
