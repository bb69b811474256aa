package syncnotify

import (
	"context"
	"fmt"
	"sync"

	"github.com/skyopshq/skyops/core/engine"
)

// MockNotifier records changes in memory. Used in tests.
type MockNotifier struct {
	Changes []engine.SyncChange
	Fail    bool
	mu      sync.Mutex
}

// NewMockNotifier creates a new MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// NotifyChange records the change or returns an error if configured to fail.
func (m *MockNotifier) NotifyChange(_ context.Context, change engine.SyncChange) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("notify failed")
	}
	m.Changes = append(m.Changes, change)
	return nil
}

// Recorded returns a copy of the recorded changes.
func (m *MockNotifier) Recorded() []engine.SyncChange {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]engine.SyncChange, len(m.Changes))
	copy(out, m.Changes)
	return out
}

// Close is a no-op.
func (m *MockNotifier) Close() error { return nil }
