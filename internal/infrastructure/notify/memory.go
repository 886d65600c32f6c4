// Package notify provides an in-memory Notifier used in tests and as the
// degraded-mode fallback when Redis is unreachable at startup.
package notify

import (
	"context"
	"sync"

	"github.com/userdeck/admin-console/internal/core/ports"
)

const maxKept = 50

// MemoryNotifier keeps the most recent notifications in a bounded ring.
// Safe for concurrent use.
type MemoryNotifier struct {
	mu      sync.Mutex
	entries []ports.Notification
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

func (m *MemoryNotifier) Push(_ context.Context, n ports.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, n)
	if len(m.entries) > maxKept {
		m.entries = m.entries[len(m.entries)-maxKept:]
	}
	return nil
}

// Recent returns the kept notifications, newest first.
func (m *MemoryNotifier) Recent(_ context.Context) ([]ports.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ports.Notification, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
	}
	return out, nil
}
