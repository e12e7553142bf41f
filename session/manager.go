package session

import (
	"context"
	"time"

	"github.com/fitrack/backend/logger"
	"github.com/google/uuid"
)

// Manager creates and validates sessions and periodically evicts expired
// ones.
type Manager struct {
	store    *Store
	duration time.Duration
	logger   logger.Logger
	stopCh   chan struct{}
}

// NewManager creates a session manager issuing sessions with the given
// lifetime.
func NewManager(duration time.Duration, log logger.Logger) *Manager {
	return &Manager{
		store:    NewStore(),
		duration: duration,
		logger:   log,
		stopCh:   make(chan struct{}),
	}
}

// Create issues a new session for the given user.
func (m *Manager) Create(userID uuid.UUID, email string) *Session {
	now := time.Now()
	sess := &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Email:     email,
		CreatedAt: now,
		ExpiresAt: now.Add(m.duration),
	}

	m.store.Set(sess)

	m.logger.Info(context.Background(), "session created", logger.Fields{
		"session_id": sess.ID.String(),
		"user_id":    userID.String(),
	})

	return sess
}

// Get retrieves a live session by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	return m.store.Get(id)
}

// Delete removes a session by ID.
func (m *Manager) Delete(id uuid.UUID) {
	m.store.Delete(id)
	m.logger.Info(context.Background(), "session deleted", logger.Fields{
		"session_id": id.String(),
	})
}

// StartCleanup launches a goroutine that evicts expired sessions at the
// given interval.
func (m *Manager) StartCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-ticker.C:
				if removed := m.store.Cleanup(); removed > 0 {
					m.logger.Info(context.Background(), "expired sessions removed", logger.Fields{
						"removed": removed,
					})
				}
			case <-m.stopCh:
				ticker.Stop()
				return
			}
		}
	}()
}

// StopCleanup stops the cleanup goroutine.
func (m *Manager) StopCleanup() {
	close(m.stopCh)
}
