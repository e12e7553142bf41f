package testcase

import (
	"testing"

	"github.com/fitrack/backend/folder"
	"github.com/fitrack/backend/logger"
	"github.com/fitrack/backend/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// setupTestStores creates a test database with the test case and step stores.
func setupTestStores(t *testing.T) (*gorm.DB, *MySQLStore, *StepMySQLStore) {
	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &folder.Folder{}, &TestCase{}, &Step{})

	log := logger.NewTestLogger()
	store := NewMySQLStore(db, "", log)
	stepStore := NewStepMySQLStore(db, log)

	return db, store, stepStore
}

// createFolderFixture inserts a folder for test cases to live in.
func createFolderFixture(t *testing.T, db *gorm.DB) *folder.Folder {
	t.Helper()

	f := &folder.Folder{
		Name:      "Fixtures",
		ProjectID: "default",
		CreatorID: uuid.New(),
	}
	testutil.CreateFixture(t, db, f)

	return f
}

// newTestCase builds a minimal valid test case in the given folder.
func newTestCase(folderID uuid.UUID, summary string) *TestCase {
	return &TestCase{
		Summary:   summary,
		FolderID:  folderID,
		CreatorID: uuid.New(),
	}
}

// stepContents builds step contents with generated summaries.
func stepContents(summaries ...string) []StepContent {
	contents := make([]StepContent, len(summaries))
	for i, s := range summaries {
		contents[i] = StepContent{
			Summary:        s,
			ExpectedResult: "expected " + s,
		}
	}
	return contents
}

// folderCachedCount reads the raw cached counter, bypassing the live-count
// override of the folder store's list path.
func folderCachedCount(t *testing.T, db *gorm.DB, folderID uuid.UUID) uint {
	t.Helper()

	var f folder.Folder
	if err := db.Where("id = ?", folderID).First(&f).Error; err != nil {
		t.Fatalf("failed to read folder: %v", err)
	}

	return f.Count
}
