package tab

import (
	"sync"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
)

// Manager hands out at most one Session per table, so every write to a
// table's tab goes through the same queue.
type Manager struct {
	svc  ports.OrderService
	opts []Option

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager returns a Manager whose sessions are built with opts.
func NewManager(svc ports.OrderService, opts ...Option) *Manager {
	return &Manager{
		svc:      svc,
		opts:     opts,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session of tableID, creating it on first use.
func (m *Manager) Session(tableID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[tableID]
	if !ok {
		s = NewSession(tableID, m.svc, m.opts...)
		m.sessions[tableID] = s
	}
	return s
}
