package user

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for user persistence operations.
type Store interface {
	// Create creates a new user in the store.
	Create(ctx context.Context, u *User) error

	// GetByID retrieves an active user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByEmail retrieves an active user by email address.
	GetByEmail(ctx context.Context, email string) (*User, error)
}
