package testcase

import (
	"context"
	"errors"

	"github.com/fitrack/backend/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StepMySQLStore implements the StepStore interface using GORM and MySQL.
type StepMySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewStepMySQLStore creates a new MySQL-backed step store.
func NewStepMySQLStore(db *gorm.DB, log logger.Logger) *StepMySQLStore {
	return &StepMySQLStore{
		db:     db,
		logger: log,
	}
}

// Append adds a step at the end of the test case's sequence. The owning
// test case row is read FOR UPDATE, so step mutations on one test case
// serialize and two appends cannot observe the same max. A plain
// transaction is not enough: under REPEATABLE READ the MAX query is a
// snapshot read, and two concurrent transactions would both see the same
// max and both commit the same number. The unique index on
// (test_case_id, step_number) backstops the lock. SQLite has no row locks;
// its driver drops the clause and its single writer gives the same
// serialization.
func (s *StepMySQLStore) Append(ctx context.Context, testCaseID uuid.UUID, content StepContent) (*Step, error) {
	if err := content.Validate(); err != nil {
		return nil, err
	}

	var step *Step
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner TestCase
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").Where("id = ?", testCaseID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTestCaseNotFound
			}
			return err
		}

		var maxNumber uint
		err := tx.WithContext(ctx).
			Model(&Step{}).
			Where("test_case_id = ?", testCaseID).
			Select("COALESCE(MAX(step_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return err
		}

		step = &Step{
			TestCaseID:     testCaseID,
			StepNumber:     maxNumber + 1,
			Summary:        content.Summary,
			PreCondition:   content.PreCondition,
			TestData:       content.TestData,
			ExpectedResult: content.ExpectedResult,
		}

		return tx.WithContext(ctx).Create(step).Error
	})

	if err != nil {
		if errors.Is(err, ErrTestCaseNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "failed to append step", logger.Fields{
			"error":        err.Error(),
			"test_case_id": testCaseID.String(),
		})
		return nil, err
	}

	s.logger.Info(ctx, "step appended", logger.Fields{
		"step_id":      step.ID.String(),
		"test_case_id": testCaseID.String(),
		"step_number":  step.StepNumber,
	})

	return step, nil
}

// Update replaces the step's content in place. The step number is immutable
// under a content update.
func (s *StepMySQLStore) Update(ctx context.Context, stepID uuid.UUID, content StepContent) (*Step, error) {
	if err := content.Validate(); err != nil {
		return nil, err
	}

	var step *Step
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := getStepWithTx(ctx, tx, stepID)
		if err != nil {
			return err
		}

		existing.Summary = content.Summary
		existing.PreCondition = content.PreCondition
		existing.TestData = content.TestData
		existing.ExpectedResult = content.ExpectedResult

		if err := tx.WithContext(ctx).Save(existing).Error; err != nil {
			return err
		}

		step = existing
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrStepNotFound) {
			return nil, err
		}
		s.logger.Error(ctx, "failed to update step", logger.Fields{
			"error":   err.Error(),
			"step_id": stepID.String(),
		})
		return nil, err
	}

	return step, nil
}

// Delete removes the step and renumbers the remaining steps of the same
// test case to 1..N in their current ascending order. A full re-sequencing
// pass rather than a tail decrement; same result, simpler to reason about.
// The owning test case row is locked first so the renumbering cannot
// interleave with a concurrent Append.
func (s *StepMySQLStore) Delete(ctx context.Context, stepID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := getStepWithTx(ctx, tx, stepID)
		if err != nil {
			return err
		}

		var owner TestCase
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").Where("id = ?", existing.TestCaseID).First(&owner).Error; err != nil {
			return err
		}

		if err := tx.WithContext(ctx).Delete(&Step{}, "id = ?", stepID).Error; err != nil {
			return err
		}

		var survivors []*Step
		err = tx.WithContext(ctx).
			Where("test_case_id = ?", existing.TestCaseID).
			Order("step_number ASC").
			Find(&survivors).Error
		if err != nil {
			return err
		}

		for i, survivor := range survivors {
			wanted := uint(i + 1)
			if survivor.StepNumber == wanted {
				continue
			}
			err = tx.WithContext(ctx).
				Model(&Step{}).
				Where("id = ?", survivor.ID).
				UpdateColumn("step_number", wanted).Error
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, ErrStepNotFound) {
			return err
		}
		s.logger.Error(ctx, "failed to delete step", logger.Fields{
			"error":   err.Error(),
			"step_id": stepID.String(),
		})
		return err
	}

	s.logger.Info(ctx, "step deleted", logger.Fields{
		"step_id": stepID.String(),
	})

	return nil
}

// ListByTestCase retrieves all steps of a test case ordered by step number.
func (s *StepMySQLStore) ListByTestCase(ctx context.Context, testCaseID uuid.UUID) ([]*Step, error) {
	var steps []*Step
	err := s.db.WithContext(ctx).
		Where("test_case_id = ?", testCaseID).
		Order("step_number ASC").
		Find(&steps).Error

	if err != nil {
		s.logger.Error(ctx, "failed to list steps", logger.Fields{
			"error":        err.Error(),
			"test_case_id": testCaseID.String(),
		})
		return nil, err
	}

	return steps, nil
}

// getStepWithTx fetches a step within a transaction.
func getStepWithTx(ctx context.Context, tx *gorm.DB, stepID uuid.UUID) (*Step, error) {
	var step Step
	err := tx.WithContext(ctx).
		Where("id = ?", stepID).
		First(&step).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStepNotFound
		}
		return nil, err
	}

	return &step, nil
}
