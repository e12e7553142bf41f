package testcase

import (
	"context"
	"errors"

	"github.com/fitrack/backend/folder"
	"github.com/fitrack/backend/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// createAttempts bounds the duplicate-key retry loop in Create. The display
// key is computed by scanning the most recently created row, so two
// concurrent creates can race to the same number; the unique index on the
// key column rejects the loser and the create is retried with a fresh scan.
const createAttempts = 3

// MySQLStore implements the Store interface using GORM and MySQL.
type MySQLStore struct {
	db        *gorm.DB
	keyPrefix string
	logger    logger.Logger
}

// NewMySQLStore creates a new MySQL-backed test case store. An empty
// keyPrefix falls back to DefaultKeyPrefix.
func NewMySQLStore(db *gorm.DB, keyPrefix string, log logger.Logger) *MySQLStore {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &MySQLStore{
		db:        db,
		keyPrefix: keyPrefix,
		logger:    log,
	}
}

// Create persists a new test case together with its initial steps and
// increments the owning folder's cached count, all in one transaction.
// The generated key continues the sequence of the most recently created
// test case.
func (s *MySQLStore) Create(ctx context.Context, tc *TestCase, initialSteps []StepContent) error {
	tc.ApplyDefaults()
	if err := tc.Validate(); err != nil {
		return err
	}
	for _, content := range initialSteps {
		if err := content.Validate(); err != nil {
			return err
		}
	}

	var err error
	for attempt := 0; attempt < createAttempts; attempt++ {
		err = s.createOnce(ctx, tc, initialSteps)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		s.logger.Warn(ctx, "test case key conflict, retrying", logger.Fields{
			"key":     tc.Key,
			"attempt": attempt + 1,
		})
	}

	if err != nil {
		if errors.Is(err, folder.ErrFolderNotFound) {
			return err
		}
		s.logger.Error(ctx, "failed to create test case", logger.Fields{
			"error":     err.Error(),
			"folder_id": tc.FolderID.String(),
		})
		return err
	}

	s.logger.Info(ctx, "test case created", logger.Fields{
		"test_case_id": tc.ID.String(),
		"key":          tc.Key,
		"folder_id":    tc.FolderID.String(),
		"steps":        len(tc.Steps),
	})

	return nil
}

func (s *MySQLStore) createOnce(ctx context.Context, tc *TestCase, initialSteps []StepContent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner folder.Folder
		if err := tx.WithContext(ctx).Where("id = ?", tc.FolderID).First(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return folder.ErrFolderNotFound
			}
			return err
		}

		last, err := s.nextKeyNumber(ctx, tx)
		if err != nil {
			return err
		}

		tc.Key = FormatKey(s.keyPrefix, last+1)
		tc.Version = 1
		tc.Steps = nil

		if err := tx.WithContext(ctx).Omit(clause.Associations).Create(tc).Error; err != nil {
			return err
		}

		for i, content := range initialSteps {
			step := Step{
				TestCaseID:     tc.ID,
				StepNumber:     uint(i + 1),
				Summary:        content.Summary,
				PreCondition:   content.PreCondition,
				TestData:       content.TestData,
				ExpectedResult: content.ExpectedResult,
			}
			if err := tx.WithContext(ctx).Create(&step).Error; err != nil {
				return err
			}
			tc.Steps = append(tc.Steps, step)
		}

		return tx.WithContext(ctx).
			Model(&folder.Folder{}).
			Where("id = ?", tc.FolderID).
			UpdateColumn("count", gorm.Expr("count + ?", 1)).Error
	})
}

// nextKeyNumber scans the most recently created test case and parses the
// numeric suffix of its key. Ties on created_at break by id so the result
// is deterministic. No prior rows yields 0.
func (s *MySQLStore) nextKeyNumber(ctx context.Context, tx *gorm.DB) (uint, error) {
	var last TestCase
	err := tx.WithContext(ctx).
		Order("created_at DESC, id DESC").
		First(&last).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return ParseKeyNumber(last.Key), nil
}

// GetByID retrieves a test case with its steps (ordered) and folder.
func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*TestCase, error) {
	var tc TestCase
	err := s.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Preload("Folder").
		Where("id = ?", id).
		First(&tc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestCaseNotFound
		}
		s.logger.Error(ctx, "failed to get test case by ID", logger.Fields{
			"error":        err.Error(),
			"test_case_id": id.String(),
		})
		return nil, err
	}

	return &tc, nil
}

// Update applies the given setters and bumps the version by exactly one.
// The increment is unconditional: an update that changes nothing still
// consumes a version. Returns the merged record with steps and folder.
func (s *MySQLStore) Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) (*TestCase, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tc TestCase
		if err := tx.WithContext(ctx).Where("id = ?", id).First(&tc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTestCaseNotFound
			}
			return err
		}

		for _, setter := range setters {
			if err := setter(&tc); err != nil {
				return err
			}
		}

		tc.Version = tc.Version + 1

		return tx.WithContext(ctx).Omit(clause.Associations).Save(&tc).Error
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrTestCaseNotFound),
			errors.Is(err, ErrInvalidSummary),
			errors.Is(err, ErrInvalidPriority),
			errors.Is(err, ErrInvalidType),
			errors.Is(err, ErrInvalidReviewStatus),
			errors.Is(err, ErrInvalidProgress):
			return nil, err
		}
		s.logger.Error(ctx, "failed to update test case", logger.Fields{
			"error":        err.Error(),
			"test_case_id": id.String(),
		})
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Delete removes the test case, its steps, and decrements the owning
// folder's cached count. The decrement is clamped: a folder count never
// goes below zero even if the cache was already understated.
func (s *MySQLStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tc TestCase
		if err := tx.WithContext(ctx).Where("id = ?", id).First(&tc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTestCaseNotFound
			}
			return err
		}

		// Cascade handled here rather than relying on a storage-level
		// rule, so behavior is identical across MySQL and the SQLite
		// test databases.
		if err := tx.WithContext(ctx).Delete(&Step{}, "test_case_id = ?", id).Error; err != nil {
			return err
		}

		if err := tx.WithContext(ctx).Delete(&TestCase{}, "id = ?", id).Error; err != nil {
			return err
		}

		return tx.WithContext(ctx).
			Model(&folder.Folder{}).
			Where("id = ? AND count > 0", tc.FolderID).
			UpdateColumn("count", gorm.Expr("count - ?", 1)).Error
	})

	if err != nil {
		if errors.Is(err, ErrTestCaseNotFound) {
			return err
		}
		s.logger.Error(ctx, "failed to delete test case", logger.Fields{
			"error":        err.Error(),
			"test_case_id": id.String(),
		})
		return err
	}

	s.logger.Info(ctx, "test case deleted", logger.Fields{
		"test_case_id": id.String(),
	})

	return nil
}

// List retrieves test cases ordered by creation time descending, with steps
// and folder included. A non-nil folderID restricts the result to one folder.
func (s *MySQLStore) List(ctx context.Context, folderID *uuid.UUID) ([]*TestCase, error) {
	query := s.db.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC")
		}).
		Preload("Folder").
		Order("created_at DESC")

	if folderID != nil {
		query = query.Where("folder_id = ?", *folderID)
	}

	var cases []*TestCase
	if err := query.Find(&cases).Error; err != nil {
		s.logger.Error(ctx, "failed to list test cases", logger.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	return cases, nil
}
