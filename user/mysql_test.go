package user

import (
	"context"
	"testing"

	"github.com/fitrack/backend/logger"
	"github.com/fitrack/backend/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &User{})

	return db, NewMySQLStore(db, logger.NewTestLogger())
}

func createTestUser(email, username string) *User {
	u := &User{
		Email:    email,
		Username: username,
		IsActive: true,
	}
	// Test-only hash placeholder; password checks are covered separately
	u.PasswordHash = "hashed"
	return u
}

func TestMySQLStore_Create(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("successfully create user", func(t *testing.T) {
		u := createTestUser("new@example.com", "new")
		err := store.Create(ctx, u)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, u.ID)
	})

	t.Run("duplicate email returns error", func(t *testing.T) {
		u := createTestUser("dup@example.com", "first")
		require.NoError(t, store.Create(ctx, u))

		other := createTestUser("dup@example.com", "second")
		err := store.Create(ctx, other)
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("missing email returns error", func(t *testing.T) {
		u := createTestUser("", "nameless")
		err := store.Create(ctx, u)
		assert.ErrorIs(t, err, ErrInvalidEmail)
	})
}

func TestMySQLStore_GetByID(t *testing.T) {
	db, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("retrieve existing user", func(t *testing.T) {
		u := createTestUser("get@example.com", "get")
		require.NoError(t, store.Create(ctx, u))

		retrieved, err := store.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, retrieved.Email)
	})

	t.Run("inactive user is not returned", func(t *testing.T) {
		u := createTestUser("inactive@example.com", "inactive")
		require.NoError(t, store.Create(ctx, u))
		require.NoError(t, db.Model(&User{}).Where("id = ?", u.ID).Update("is_active", false).Error)

		_, err := store.GetByID(ctx, u.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("non-existent user returns error", func(t *testing.T) {
		_, err := store.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestMySQLStore_GetByEmail(t *testing.T) {
	_, store := setupTestStore(t)
	ctx := context.Background()

	t.Run("retrieve existing user", func(t *testing.T) {
		u := createTestUser("byemail@example.com", "byemail")
		require.NoError(t, store.Create(ctx, u))

		retrieved, err := store.GetByEmail(ctx, "byemail@example.com")
		require.NoError(t, err)
		assert.Equal(t, u.ID, retrieved.ID)
	})

	t.Run("unknown email returns error", func(t *testing.T) {
		_, err := store.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
