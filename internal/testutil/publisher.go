package testutil

import (
	"sync"

	"github.com/oseko/lendbook-backend/internal/websocket"
)

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	mu     sync.Mutex
	events map[int32][]websocket.Event
}

// NewMockEventPublisher creates a new MockEventPublisher
func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make(map[int32][]websocket.Event)}
}

// Publish records the event
func (m *MockEventPublisher) Publish(ownerID int32, event websocket.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[ownerID] = append(m.events[ownerID], event)
}

// EventsFor returns every event published for an owner, in order
func (m *MockEventPublisher) EventsFor(ownerID int32) []websocket.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]websocket.Event, len(m.events[ownerID]))
	copy(out, m.events[ownerID])
	return out
}
