package testcase

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrStepNotFound is returned when a step is not found.
	ErrStepNotFound = errors.New("step not found")

	// ErrInvalidStepSummary is returned when a step summary is empty.
	ErrInvalidStepSummary = errors.New("step summary is required")

	// ErrInvalidExpectedResult is returned when a step expected result is empty.
	ErrInvalidExpectedResult = errors.New("expected result is required")
)

// Step is one ordered instruction and expectation pair within a test case.
// Within a test case, step numbers always form the dense sequence 1..N.
type Step struct {
	ID             uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	TestCaseID     uuid.UUID `json:"testCaseId" gorm:"type:char(36);not null;index:idx_test_steps_test_case_id;uniqueIndex:uniq_test_steps_case_number,priority:1"`
	StepNumber     uint      `json:"stepNumber" gorm:"not null;uniqueIndex:uniq_test_steps_case_number,priority:2"`
	Summary        string    `json:"summary" gorm:"type:text;not null"`
	PreCondition   string    `json:"preCondition" gorm:"type:text"`
	TestData       string    `json:"testData" gorm:"type:text"`
	ExpectedResult string    `json:"expectedResult" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName returns the database table name.
func (Step) TableName() string {
	return "test_steps"
}

// BeforeCreate hook to generate a UUID before inserting a new step.
func (s *Step) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// StepContent carries the editable fields of a step. The step number is
// never part of the content; it is assigned on append and rewritten only by
// renumbering after a deletion.
type StepContent struct {
	Summary        string `json:"summary"`
	PreCondition   string `json:"preCondition"`
	TestData       string `json:"testData"`
	ExpectedResult string `json:"expectedResult"`
}

// Validate checks the required content fields.
func (c StepContent) Validate() error {
	if c.Summary == "" {
		return ErrInvalidStepSummary
	}
	if c.ExpectedResult == "" {
		return ErrInvalidExpectedResult
	}
	return nil
}
