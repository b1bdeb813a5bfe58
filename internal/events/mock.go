package events

import (
	"context"
	"sync"
)

// MockPublisher records events for tests.
type MockPublisher struct {
	mu     sync.Mutex
	events []ConfirmationRequested
	err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) PublishConfirmationRequested(_ context.Context, event ConfirmationRequested) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockPublisher) Close() error { return nil }

// FailWith makes every subsequent publish return err.
func (m *MockPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockPublisher) PublishedEvents() []ConfirmationRequested {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ConfirmationRequested, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
