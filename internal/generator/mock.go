package generator

import (
	"context"
	"sync"
)

// MockGenerator returns controllable fixed text for development and
// testing.
type MockGenerator struct {
	mu    sync.Mutex
	Reply string
	Err   error
	calls int
}

func (m *MockGenerator) Name() string { return "mock" }

func (m *MockGenerator) Generate(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.Err != nil {
		return "", m.Err
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return "mock insight for: " + req.Context, nil
}

// Calls reports how many times Generate ran.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
