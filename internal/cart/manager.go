package cart

import "sync"

// Manager owns one session per terminal. Sessions are created lazily on
// first use and live until dropped; nothing is persisted across a restart.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Session returns the terminal's session, creating an empty one when the
// terminal has none yet.
func (m *Manager) Session(terminalID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[terminalID]
	if !ok {
		s = NewSession(terminalID)
		m.sessions[terminalID] = s
	}
	return s
}

// Drop discards a terminal's session entirely.
func (m *Manager) Drop(terminalID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, terminalID)
}
