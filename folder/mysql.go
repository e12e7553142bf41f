package folder

import (
	"context"
	"errors"

	"github.com/fitrack/backend/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MySQLStore implements the Store interface using GORM and MySQL.
type MySQLStore struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewMySQLStore creates a new MySQL-backed folder store.
func NewMySQLStore(db *gorm.DB, log logger.Logger) *MySQLStore {
	return &MySQLStore{
		db:     db,
		logger: log,
	}
}

// Create creates a new folder. The child count always starts at zero.
func (s *MySQLStore) Create(ctx context.Context, f *Folder) error {
	if err := f.Validate(); err != nil {
		return err
	}

	f.Count = 0
	if err := s.db.WithContext(ctx).Create(f).Error; err != nil {
		s.logger.Error(ctx, "failed to create folder", logger.Fields{
			"error": err.Error(),
			"name":  f.Name,
		})
		return err
	}

	s.logger.Info(ctx, "folder created", logger.Fields{
		"folder_id": f.ID.String(),
		"name":      f.Name,
	})

	return nil
}

// GetByID retrieves a folder by its ID.
func (s *MySQLStore) GetByID(ctx context.Context, id uuid.UUID) (*Folder, error) {
	var f Folder
	err := s.db.WithContext(ctx).
		Where("id = ?", id).
		First(&f).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		s.logger.Error(ctx, "failed to get folder by ID", logger.Fields{
			"error":     err.Error(),
			"folder_id": id.String(),
		})
		return nil, err
	}

	return &f, nil
}

// Update applies the given setters to a folder.
func (s *MySQLStore) Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := getByIDWithTx(ctx, tx, id)
		if err != nil {
			return err
		}

		for _, setter := range setters {
			if err := setter(f); err != nil {
				return err
			}
		}

		return tx.WithContext(ctx).Save(f).Error
	})

	if err != nil {
		if errors.Is(err, ErrFolderNotFound) || errors.Is(err, ErrInvalidFolderName) {
			return err
		}
		s.logger.Error(ctx, "failed to update folder", logger.Fields{
			"error":     err.Error(),
			"folder_id": id.String(),
		})
		return err
	}

	return nil
}

// Delete removes a folder. The emptiness guard queries the live test case
// count so a stale-low cached counter can never allow deleting a non-empty
// folder.
func (s *MySQLStore) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getByIDWithTx(ctx, tx, id); err != nil {
			return err
		}

		var live int64
		if err := tx.WithContext(ctx).
			Table("test_cases").
			Where("folder_id = ?", id).
			Count(&live).Error; err != nil {
			return err
		}

		if live > 0 {
			return ErrFolderNotEmpty
		}

		return tx.WithContext(ctx).Delete(&Folder{}, "id = ?", id).Error
	})

	if err != nil {
		if errors.Is(err, ErrFolderNotFound) || errors.Is(err, ErrFolderNotEmpty) {
			return err
		}
		s.logger.Error(ctx, "failed to delete folder", logger.Fields{
			"error":     err.Error(),
			"folder_id": id.String(),
		})
		return err
	}

	s.logger.Info(ctx, "folder deleted", logger.Fields{
		"folder_id": id.String(),
	})

	return nil
}

// List retrieves all folders ordered by creation time ascending. Each
// folder's Count is replaced with its live count so callers never see a
// stale nonzero count for an empty folder. Both reads run in one
// transaction so the folder rows and the membership counts come from a
// single snapshot.
func (s *MySQLStore) List(ctx context.Context) ([]*Folder, error) {
	var folders []*Folder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Order("created_at ASC").
			Find(&folders).Error; err != nil {
			return err
		}

		type memberCount struct {
			FolderID uuid.UUID
			Total    int64
		}

		var counts []memberCount
		if err := tx.WithContext(ctx).
			Table("test_cases").
			Select("folder_id, COUNT(*) AS total").
			Group("folder_id").
			Scan(&counts).Error; err != nil {
			return err
		}

		live := make(map[uuid.UUID]int64, len(counts))
		for _, c := range counts {
			live[c.FolderID] = c.Total
		}

		for _, f := range folders {
			f.Count = uint(live[f.ID])
		}

		return nil
	})

	if err != nil {
		s.logger.Error(ctx, "failed to list folders", logger.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	return folders, nil
}

// LiveCount computes the folder's test case count directly from current
// membership. This is the reconciliation read path; the cached counter and
// this value must agree in steady state.
func (s *MySQLStore) LiveCount(ctx context.Context, id uuid.UUID) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Table("test_cases").
		Where("folder_id = ?", id).
		Count(&count).Error

	if err != nil {
		s.logger.Error(ctx, "failed to compute live count", logger.Fields{
			"error":     err.Error(),
			"folder_id": id.String(),
		})
		return 0, err
	}

	return int(count), nil
}

// getByIDWithTx fetches a folder within a transaction.
func getByIDWithTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Folder, error) {
	var f Folder
	err := tx.WithContext(ctx).
		Where("id = ?", id).
		First(&f).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	return &f, nil
}
