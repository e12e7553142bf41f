package session

import (
	"testing"
	"time"

	"github.com/fitrack/backend/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("set and get", func(t *testing.T) {
		store := NewStore()
		sess := &Session{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			Email:     "a@example.com",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		store.Set(sess)

		got, err := store.Get(sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.UserID, got.UserID)
		assert.Equal(t, sess.Email, got.Email)
	})

	t.Run("unknown session", func(t *testing.T) {
		store := NewStore()
		_, err := store.Get(uuid.New())
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("expired session", func(t *testing.T) {
		store := NewStore()
		sess := &Session{
			ID:        uuid.New(),
			UserID:    uuid.New(),
			ExpiresAt: time.Now().Add(-time.Minute),
		}
		store.Set(sess)

		_, err := store.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})

	t.Run("delete", func(t *testing.T) {
		store := NewStore()
		sess := &Session{
			ID:        uuid.New(),
			ExpiresAt: time.Now().Add(time.Hour),
		}
		store.Set(sess)
		store.Delete(sess.ID)

		_, err := store.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("cleanup removes only expired sessions", func(t *testing.T) {
		store := NewStore()
		live := &Session{ID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}
		dead := &Session{ID: uuid.New(), ExpiresAt: time.Now().Add(-time.Hour)}
		store.Set(live)
		store.Set(dead)

		removed := store.Cleanup()
		assert.Equal(t, 1, removed)

		_, err := store.Get(live.ID)
		assert.NoError(t, err)
		_, err = store.Get(dead.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestManager(t *testing.T) {
	t.Run("create and get", func(t *testing.T) {
		m := NewManager(time.Hour, logger.NewTestLogger())
		userID := uuid.New()

		sess := m.Create(userID, "user@example.com")
		assert.NotEqual(t, uuid.Nil, sess.ID)
		assert.Equal(t, userID, sess.UserID)
		assert.True(t, sess.ExpiresAt.After(time.Now()))

		got, err := m.Get(sess.ID)
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
	})

	t.Run("delete", func(t *testing.T) {
		m := NewManager(time.Hour, logger.NewTestLogger())
		sess := m.Create(uuid.New(), "user@example.com")

		m.Delete(sess.ID)

		_, err := m.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("short lived sessions expire", func(t *testing.T) {
		m := NewManager(-time.Second, logger.NewTestLogger())
		sess := m.Create(uuid.New(), "user@example.com")

		_, err := m.Get(sess.ID)
		assert.ErrorIs(t, err, ErrSessionExpired)
	})
}
