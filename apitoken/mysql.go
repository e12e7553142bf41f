package apitoken

import (
	"context"
	"errors"
	"time"

	"github.com/fitrack/backend/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MySQLStore implements the Store interface using GORM and MySQL.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new MySQL-backed API token store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new API token, enforcing the per-user limit.
func (s *MySQLStore) Create(ctx context.Context, token *APIToken) error {
	if err := token.Validate(); err != nil {
		return err
	}

	var count int64
	err := s.db.WithContext(ctx).
		Model(&APIToken{}).
		Where("user_id = ? AND is_active = ?", token.UserID, true).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count >= MaxTokensPerUser {
		return ErrMaxTokensReached
	}

	if err := s.db.WithContext(ctx).Create(token).Error; err != nil {
		s.logger.Error(ctx, "failed to create api token", logger.Fields{
			"error":   err.Error(),
			"user_id": token.UserID.String(),
		})
		return err
	}

	s.logger.Info(ctx, "api token created", logger.Fields{
		"token_id": token.ID.String(),
		"user_id":  token.UserID.String(),
		"scope":    token.Scope,
	})

	return nil
}

// GetByID retrieves a token by its ID regardless of active state.
func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*APIToken, error) {
	var token APIToken
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		s.logger.Error(ctx, "failed to get api token by ID", logger.Fields{
			"error":    err.Error(),
			"token_id": id.String(),
		})
		return nil, err
	}

	return &token, nil
}

// GetByTokenHash retrieves an active, non-expired token by its hash.
func (s *MySQLStore) GetByTokenHash(ctx context.Context, hash string) (*APIToken, error) {
	var token APIToken
	err := s.db.WithContext(ctx).
		Where("token_hash = ? AND is_active = ? AND expires_at > ?", hash, true, time.Now()).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		s.logger.Error(ctx, "failed to get api token by hash", logger.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &token, nil
}

// ListByUser retrieves active tokens for a user, newest first.
func (s *MySQLStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*APIToken, error) {
	var tokens []*APIToken
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at DESC").
		Find(&tokens).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list api tokens", logger.Fields{
			"error":   err.Error(),
			"user_id": userID.String(),
		})
		return nil, err
	}

	return tokens, nil
}

// Revoke deactivates a token.
func (s *MySQLStore) Revoke(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&APIToken{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)

	if result.Error != nil {
		s.logger.Error(ctx, "failed to revoke api token", logger.Fields{
			"error":    result.Error.Error(),
			"token_id": id.String(),
		})
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}

	s.logger.Info(ctx, "api token revoked", logger.Fields{
		"token_id": id.String(),
	})

	return nil
}
