package apitoken

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTokenNotFound is returned when an API token is not found.
	ErrTokenNotFound = errors.New("api token not found")

	// ErrInvalidTokenName is returned when a token name is empty.
	ErrInvalidTokenName = errors.New("token name is required")

	// ErrInvalidScope is returned when the scope is not a known value.
	ErrInvalidScope = errors.New("invalid scope: must be read_only or read_write")

	// ErrMaxTokensReached is returned when a user already holds the
	// maximum number of active tokens.
	ErrMaxTokensReached = errors.New("maximum number of active tokens reached")
)

const (
	ScopeReadOnly  = "read_only"
	ScopeReadWrite = "read_write"

	MaxTokensPerUser = 5

	DefaultExpiry = 30 * 24 * time.Hour
	MinExpiry     = 24 * time.Hour
	MaxExpiry     = 365 * 24 * time.Hour
)

// APIToken grants programmatic access to the API. Only the SHA-256 hash of
// the raw token is stored.
type APIToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index:idx_api_tokens_user_id"`
	Name      string    `json:"name" gorm:"not null"`
	TokenHash string    `json:"-" gorm:"type:char(64);not null;uniqueIndex:idx_api_tokens_token_hash"`
	Scope     string    `json:"scope" gorm:"type:varchar(20);not null;default:read_only"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	IsActive  bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (APIToken) TableName() string {
	return "api_tokens"
}

// BeforeCreate hook to generate a UUID before inserting a new token.
func (t *APIToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Validate checks if the token has valid required fields.
func (t *APIToken) Validate() error {
	if t.Name == "" {
		return ErrInvalidTokenName
	}
	if t.Scope != ScopeReadOnly && t.Scope != ScopeReadWrite {
		return ErrInvalidScope
	}
	if t.UserID == uuid.Nil {
		return errors.New("user_id is required")
	}
	if t.TokenHash == "" {
		return errors.New("token_hash is required")
	}
	return nil
}

// IsExpired reports whether the token has passed its expiry.
func (t *APIToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// GenerateToken creates a new random token with the fit_ prefix.
// Returns the raw token string and its SHA-256 hash; the raw token is shown
// to the user once and never persisted.
func GenerateToken() (rawToken string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	rawToken = "fit_" + base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(buf)
	return rawToken, HashToken(rawToken), nil
}

// HashToken returns the SHA-256 hex digest of a raw token.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", sum)
}

// ClampExpiry normalizes an expiry duration: zero means the default, and
// values outside [MinExpiry, MaxExpiry] are clamped to the boundary.
func ClampExpiry(d time.Duration) time.Duration {
	switch {
	case d == 0:
		return DefaultExpiry
	case d < MinExpiry:
		return MinExpiry
	case d > MaxExpiry:
		return MaxExpiry
	}
	return d
}
