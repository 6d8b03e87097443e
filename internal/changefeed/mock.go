package changefeed

import (
	"context"
	"sync"
)

// MockPublisher is a mock implementation of Publisher for testing.
// It is safe for concurrent use.
type MockPublisher struct {
	mu sync.Mutex

	PublishFunc func(ctx context.Context, e Event) error

	PublishCalls []Event
}

// NewMockPublisher creates a new mock publisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(ctx context.Context, e Event) error {
	m.mu.Lock()
	m.PublishCalls = append(m.PublishCalls, e)
	fn := m.PublishFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, e)
	}
	return nil
}

// Events returns a copy of every published event.
func (m *MockPublisher) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Event(nil), m.PublishCalls...)
}
