package session

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Manager owns the live sessions keyed by user id.
type Manager struct {
	loader ProfileLoader
	log    *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
	onClose  []func(uid string)
}

func NewManager(loader ProfileLoader, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{loader: loader, log: log, sessions: map[string]*Session{}}
}

// OnClose registers a hook run when a session is torn down, so components
// holding per-user state can release it.
func (m *Manager) OnClose(fn func(uid string)) {
	m.mu.Lock()
	m.onClose = append(m.onClose, fn)
	m.mu.Unlock()
}

// Open signs uid in. An existing session is reused and refreshed.
func (m *Manager) Open(ctx context.Context, uid string) (*Session, error) {
	m.mu.Lock()
	s, ok := m.sessions[uid]
	if !ok {
		s = newSession(uid, m.loader)
	}
	m.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	if cur, ok := m.sessions[uid]; ok {
		s = cur
	} else {
		m.sessions[uid] = s
		m.log.Info("session opened", zap.String("uid", uid))
	}
	m.mu.Unlock()
	return s, nil
}

func (m *Manager) Get(uid string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uid]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Active reports whether uid has a live session.
func (m *Manager) Active(uid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[uid]
	return ok
}

// Close signs uid out and reports whether a session existed.
func (m *Manager) Close(uid string) bool {
	m.mu.Lock()
	_, ok := m.sessions[uid]
	delete(m.sessions, uid)
	hooks := append([]func(string){}, m.onClose...)
	m.mu.Unlock()
	if !ok {
		return false
	}
	for _, fn := range hooks {
		fn(uid)
	}
	m.log.Info("session closed", zap.String("uid", uid))
	return true
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
