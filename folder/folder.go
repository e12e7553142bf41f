package folder

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrFolderNotFound is returned when a folder is not found.
	ErrFolderNotFound = errors.New("folder not found")

	// ErrInvalidFolderName is returned when a folder name is empty.
	ErrInvalidFolderName = errors.New("folder name is required")

	// ErrInvalidCreator is returned when creator_id is not set.
	ErrInvalidCreator = errors.New("creator_id is required")

	// ErrFolderNotEmpty is returned when deleting a folder that still
	// contains test cases.
	ErrFolderNotEmpty = errors.New("cannot delete folder with test cases")
)

// Folder groups test cases, analogous to a directory.
//
// Count is a denormalized child count maintained by the test case composite
// operations. Reads that matter (the deletion guard, listing) always go
// through the live count computed from test_cases membership; the cached
// value is a performance hint only.
type Folder struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	ProjectID string    `json:"projectId" gorm:"not null;index:idx_test_folders_project_id"`
	CreatorID uuid.UUID `json:"creatorId" gorm:"type:char(36);not null;index:idx_test_folders_creator_id"`
	Count     uint      `json:"count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (Folder) TableName() string {
	return "test_folders"
}

// BeforeCreate hook to generate a UUID before inserting a new folder.
func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Validate checks if the folder has valid required fields.
func (f *Folder) Validate() error {
	if f.Name == "" {
		return ErrInvalidFolderName
	}
	if f.CreatorID == uuid.Nil {
		return ErrInvalidCreator
	}
	return nil
}
