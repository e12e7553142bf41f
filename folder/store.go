package folder

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for folder persistence operations.
type Store interface {
	// Create creates a new folder with an empty child count.
	Create(ctx context.Context, f *Folder) error

	// GetByID retrieves a folder by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*Folder, error)

	// Update applies the given setters to a folder.
	Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) error

	// Delete removes a folder. It fails with ErrFolderNotEmpty when the
	// folder still contains test cases; the check uses the live count,
	// never the cached one.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves all folders ordered by creation time ascending, with
	// each folder's Count replaced by its live test case count.
	List(ctx context.Context) ([]*Folder, error)

	// LiveCount computes the folder's test case count directly from
	// current membership.
	LiveCount(ctx context.Context, id uuid.UUID) (int, error)
}

// UpdateSetter is a function that mutates a folder field during Update.
type UpdateSetter func(*Folder) error
