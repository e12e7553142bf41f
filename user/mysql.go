package user

import (
	"context"
	"errors"
	"strings"

	"github.com/fitrack/backend/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MySQLStore implements the Store interface using GORM and MySQL.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new MySQL-backed user store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new user in the database.
func (s *MySQLStore) Create(ctx context.Context, u *User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateEmail
		}
		s.logger.Error(ctx, "failed to create user", logger.Fields{
			"error": err.Error(),
			"email": u.Email,
		})
		return err
	}

	s.logger.Info(ctx, "user created", logger.Fields{
		"user_id": u.ID.String(),
		"email":   u.Email,
	})

	return nil
}

// GetByID retrieves an active user by ID.
func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to get user by ID", logger.Fields{
			"error":   err.Error(),
			"user_id": id.String(),
		})
		return nil, err
	}

	return &u, nil
}

// GetByEmail retrieves an active user by email address.
func (s *MySQLStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := s.db.WithContext(ctx).
		Where("email = ? AND is_active = ?", email, true).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error(ctx, "failed to get user by email", logger.Fields{
			"error": err.Error(),
			"email": email,
		})
		return nil, err
	}

	return &u, nil
}

// isDuplicate matches unique violations for both MySQL and the SQLite test
// databases.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
