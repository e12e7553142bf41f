package folder

import (
	"testing"

	"github.com/fitrack/backend/logger"
	"github.com/fitrack/backend/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// setupTestStore creates a test database and folder store for testing. The
// test_cases table is created directly so the membership queries have a
// target; the testcase package itself depends on this one and cannot be
// imported here.
func setupTestStore(t *testing.T) (*gorm.DB, Store) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &Folder{})

	err := db.Exec(`CREATE TABLE test_cases (
		id TEXT PRIMARY KEY,
		folder_id TEXT NOT NULL
	)`).Error
	if err != nil {
		t.Fatalf("failed to create test_cases table: %v", err)
	}

	log := logger.NewTestLogger()
	store := NewMySQLStore(db, log)

	return db, store
}

// createTestFolder creates a folder with default values.
func createTestFolder(name string) *Folder {
	return &Folder{
		Name:      name,
		ProjectID: "default",
		CreatorID: uuid.New(),
	}
}

// addMember inserts a test case membership row for the given folder without
// touching the cached counter, simulating writes from the test case side.
func addMember(t *testing.T, db *gorm.DB, folderID uuid.UUID) uuid.UUID {
	t.Helper()

	id := uuid.New()
	err := db.Table("test_cases").Create(map[string]interface{}{
		"id":        id.String(),
		"folder_id": folderID.String(),
	}).Error
	if err != nil {
		t.Fatalf("failed to insert test case row: %v", err)
	}

	return id
}
