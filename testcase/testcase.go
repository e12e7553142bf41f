package testcase

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/fitrack/backend/folder"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrTestCaseNotFound is returned when a test case is not found.
	ErrTestCaseNotFound = errors.New("test case not found")

	// ErrInvalidSummary is returned when a test case summary is empty.
	ErrInvalidSummary = errors.New("summary is required")

	// ErrInvalidFolderID is returned when folder_id is not set.
	ErrInvalidFolderID = errors.New("folder_id is required")

	// ErrInvalidCreator is returned when creator_id is not set.
	ErrInvalidCreator = errors.New("creator_id is required")

	// ErrInvalidPriority is returned when the priority is not a known value.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidType is returned when the type is not a known value.
	ErrInvalidType = errors.New("invalid type")

	// ErrInvalidReviewStatus is returned when the review status is not a known value.
	ErrInvalidReviewStatus = errors.New("invalid review status")

	// ErrInvalidProgress is returned when the progress is not a known value.
	ErrInvalidProgress = errors.New("invalid progress")
)

// Priority indicates how urgent a test case is.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityNormal   Priority = "NORMAL"
	PriorityLow      Priority = "LOW"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityNormal, PriorityLow:
		return true
	}
	return false
}

// Type classifies what kind of verification a test case performs.
type Type string

const (
	TypeFunctional    Type = "FUNCTIONAL"
	TypeNonFunctional Type = "NON_FUNCTIONAL"
	TypePerformance   Type = "PERFORMANCE"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeFunctional, TypeNonFunctional, TypePerformance:
		return true
	}
	return false
}

// ReviewStatus tracks the review state of a test case.
type ReviewStatus string

const (
	ReviewStatusNew      ReviewStatus = "NEW"
	ReviewStatusApproved ReviewStatus = "APPROVED"
	ReviewStatusRejected ReviewStatus = "REJECTED"
)

// Valid reports whether r is a known review status.
func (r ReviewStatus) Valid() bool {
	switch r {
	case ReviewStatusNew, ReviewStatusApproved, ReviewStatusRejected:
		return true
	}
	return false
}

// Progress tracks the execution state of a test case.
type Progress string

const (
	ProgressTodo       Progress = "TODO"
	ProgressInProgress Progress = "IN_PROGRESS"
	ProgressDone       Progress = "DONE"
	ProgressCancelled  Progress = "CANCELLED"
)

// Valid reports whether p is a known progress value.
func (p Progress) Valid() bool {
	switch p {
	case ProgressTodo, ProgressInProgress, ProgressDone, ProgressCancelled:
		return true
	}
	return false
}

// Labels is an ordered list of free-form tags. Duplicates are allowed and
// insertion order is preserved. Stored as a JSON column.
type Labels []string

// Value implements the driver.Valuer interface for database storage.
func (l Labels) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(Labels{})
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval.
func (l *Labels) Scan(value interface{}) error {
	if value == nil {
		*l = Labels{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan Labels: unsupported type")
	}

	return json.Unmarshal(raw, l)
}

// TestCase is a reusable verification procedure with metadata and an ordered
// list of steps. Key is the human-readable display identifier; Version
// increments by one on every successful field update.
type TestCase struct {
	ID           uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Key          string         `json:"key" gorm:"type:varchar(64);not null;uniqueIndex:idx_test_cases_key"`
	Summary      string         `json:"summary" gorm:"type:text;not null"`
	Priority     Priority       `json:"priority" gorm:"type:varchar(20);not null;default:MEDIUM"`
	Type         Type           `json:"type" gorm:"type:varchar(20);not null;default:FUNCTIONAL"`
	ReviewStatus ReviewStatus   `json:"reviewStatus" gorm:"type:varchar(20);not null;default:NEW"`
	Progress     Progress       `json:"progress" gorm:"type:varchar(20);not null;default:TODO"`
	Labels       Labels         `json:"labels" gorm:"type:json"`
	Version      uint           `json:"version" gorm:"not null;default:1"`
	FolderID     uuid.UUID      `json:"folderId" gorm:"type:char(36);not null;index:idx_test_cases_folder_id"`
	CreatorID    uuid.UUID      `json:"creatorId" gorm:"type:char(36);not null"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Steps        []Step         `json:"steps" gorm:"foreignKey:TestCaseID;references:ID"`
	Folder       *folder.Folder `json:"folder,omitempty" gorm:"foreignKey:FolderID;references:ID"`
}

// TableName returns the database table name.
func (TestCase) TableName() string {
	return "test_cases"
}

// BeforeCreate hook to generate a UUID before inserting a new test case.
func (tc *TestCase) BeforeCreate(tx *gorm.DB) error {
	if tc.ID == uuid.Nil {
		tc.ID = uuid.New()
	}
	return nil
}

// ApplyDefaults fills unset enum fields with their creation defaults.
func (tc *TestCase) ApplyDefaults() {
	if tc.Priority == "" {
		tc.Priority = PriorityMedium
	}
	if tc.Type == "" {
		tc.Type = TypeFunctional
	}
	if tc.ReviewStatus == "" {
		tc.ReviewStatus = ReviewStatusNew
	}
	if tc.Progress == "" {
		tc.Progress = ProgressTodo
	}
	if tc.Labels == nil {
		tc.Labels = Labels{}
	}
}

// Validate checks if the test case has valid required fields.
func (tc *TestCase) Validate() error {
	if tc.Summary == "" {
		return ErrInvalidSummary
	}
	if tc.FolderID == uuid.Nil {
		return ErrInvalidFolderID
	}
	if tc.CreatorID == uuid.Nil {
		return ErrInvalidCreator
	}
	if !tc.Priority.Valid() {
		return ErrInvalidPriority
	}
	if !tc.Type.Valid() {
		return ErrInvalidType
	}
	if !tc.ReviewStatus.Valid() {
		return ErrInvalidReviewStatus
	}
	if !tc.Progress.Valid() {
		return ErrInvalidProgress
	}
	return nil
}
