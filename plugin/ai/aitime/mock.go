package aitime

import (
	"context"
	"sync"
	"time"
)

// MockFallback is a scripted FallbackDelegate for tests.
type MockFallback struct {
	// Matches maps an input text to the match returned for it.
	Matches map[string]FallbackMatch
	// Err is returned for every call when set.
	Err error

	mu    sync.Mutex
	calls []MockFallbackCall
}

// MockFallbackCall records one Resolve invocation.
type MockFallbackCall struct {
	Text            string
	Reference       time.Time
	ForwardDateBias bool
}

// NewMockFallback creates a MockFallback with no scripted matches.
func NewMockFallback() *MockFallback {
	return &MockFallback{Matches: map[string]FallbackMatch{}}
}

// Resolve returns the scripted match for text, or nothing.
func (m *MockFallback) Resolve(_ context.Context, text string, reference time.Time, forwardDateBias bool) (*FallbackMatch, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockFallbackCall{Text: text, Reference: reference, ForwardDateBias: forwardDateBias})
	m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	match, ok := m.Matches[text]
	if !ok {
		return nil, nil
	}
	return &match, nil
}

// Calls returns the recorded invocations.
func (m *MockFallback) Calls() []MockFallbackCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockFallbackCall(nil), m.calls...)
}

// Ensure MockFallback implements FallbackDelegate
var _ FallbackDelegate = (*MockFallback)(nil)
