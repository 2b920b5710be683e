package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	ucerrors "github.com/johnquangdev/meet-agent/internal/usecase/errors"
)

// Manager keeps independent sessions keyed by id. Sessions share no state.
type Manager struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*Session
	newSession func() *Session
	idleTTL    time.Duration
	logger     *zap.Logger
}

// NewManager creates a manager that builds sessions with newSession.
// A non-positive idleTTL disables eviction.
func NewManager(newSession func() *Session, idleTTL time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		sessions:   make(map[uuid.UUID]*Session),
		newSession: newSession,
		idleTTL:    idleTTL,
		logger:     logger,
	}
}

// Create starts a new session
func (m *Manager) Create() (uuid.UUID, *Session) {
	id := uuid.New()
	s := m.newSession()

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Info("💬 Session created", zap.String("session_id", id.String()))
	}
	return id, s
}

// Get returns the session for id
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ucerrors.ErrSessionNotFound)
	}
	return s, nil
}

// Delete drops a session
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle removes sessions unused since now-idleTTL and returns how many were removed
func (m *Manager) EvictIdle(now time.Time) int {
	if m.idleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-m.idleTTL)

	// snapshot first: LastUsed waits on a busy session's lock
	m.mu.RLock()
	snapshot := make(map[uuid.UUID]*Session, len(m.sessions))
	for id, s := range m.sessions {
		snapshot[id] = s
	}
	m.mu.RUnlock()

	stale := make([]uuid.UUID, 0)
	for id, s := range snapshot {
		if s.LastUsed().Before(cutoff) {
			stale = append(stale, id)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for _, id := range stale {
		if m.sessions[id] == snapshot[id] {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run evicts idle sessions periodically until ctx is cancelled
func (m *Manager) Run(ctx context.Context, every time.Duration) {
	if m.idleTTL <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := m.EvictIdle(now); n > 0 && m.logger != nil {
				m.logger.Info("🧹 Evicted idle sessions", zap.Int("count", n), zap.Int("remaining", m.Len()))
			}
		}
	}
}
