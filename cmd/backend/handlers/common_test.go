package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fitrack/backend/folder"
	"github.com/fitrack/backend/logger"
	"github.com/fitrack/backend/testcase"
	"github.com/fitrack/backend/testutil"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// handlerFixture wires real stores over an in-memory database for handler
// tests.
type handlerFixture struct {
	db            *gorm.DB
	folderStore   folder.Store
	testCaseStore testcase.Store
	stepStore     testcase.StepStore
	userID        uuid.UUID
}

func setupHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testutil.AutoMigrate(t, db, &folder.Folder{}, &testcase.TestCase{}, &testcase.Step{})

	log := logger.NewTestLogger()

	return &handlerFixture{
		db:            db,
		folderStore:   folder.NewMySQLStore(db, log),
		testCaseStore: testcase.NewMySQLStore(db, "", log),
		stepStore:     testcase.NewStepMySQLStore(db, log),
		userID:        uuid.New(),
	}
}

// authedRequest builds a request carrying an authenticated user, a JSON body,
// and mux path variables.
func (f *handlerFixture) authedRequest(t *testing.T, method, target string, body interface{}, vars map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	ctx := context.WithValue(req.Context(), UserIDKey, f.userID)
	req = req.WithContext(ctx)
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	return req
}

// decodeJSON decodes a recorded response body.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()

	if err := json.NewDecoder(w.Body).Decode(dest); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}
