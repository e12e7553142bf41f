package handlers

import (
	"errors"
	"net/http"

	"github.com/fitrack/backend/folder"
	"github.com/fitrack/backend/logger"
	"github.com/fitrack/backend/testcase"
	"github.com/google/uuid"
)

// TestCaseHandler handles test case-related requests.
type TestCaseHandler struct {
	testCaseStore testcase.Store
	logger        logger.Logger
}

// NewTestCaseHandler creates a new test case handler.
func NewTestCaseHandler(testCaseStore testcase.Store, log logger.Logger) *TestCaseHandler {
	return &TestCaseHandler{
		testCaseStore: testCaseStore,
		logger:        log,
	}
}

// CreateTestCaseRequest represents a test case creation request. Enum fields
// left empty take their creation defaults; Steps become the initial step
// sequence numbered in the given order.
type CreateTestCaseRequest struct {
	FolderID     uuid.UUID              `json:"folderId"`
	Summary      string                 `json:"summary"`
	Priority     testcase.Priority      `json:"priority"`
	Type         testcase.Type          `json:"type"`
	ReviewStatus testcase.ReviewStatus  `json:"reviewStatus"`
	Progress     testcase.Progress      `json:"progress"`
	Labels       testcase.Labels        `json:"labels"`
	Steps        []testcase.StepContent `json:"steps"`
}

// UpdateTestCaseRequest represents a merge-patch update. Absent fields keep
// their current values. Labels is tri-state: a nil pointer means untouched,
// a pointer to an empty list replaces the labels with none.
type UpdateTestCaseRequest struct {
	Summary      *string                `json:"summary,omitempty"`
	Priority     *testcase.Priority     `json:"priority,omitempty"`
	Type         *testcase.Type         `json:"type,omitempty"`
	ReviewStatus *testcase.ReviewStatus `json:"reviewStatus,omitempty"`
	Progress     *testcase.Progress     `json:"progress,omitempty"`
	Labels       *testcase.Labels       `json:"labels,omitempty"`
}

// Create handles creating a new test case with optional initial steps.
func (h *TestCaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateTestCaseRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tc := &testcase.TestCase{
		Summary:      req.Summary,
		Priority:     req.Priority,
		Type:         req.Type,
		ReviewStatus: req.ReviewStatus,
		Progress:     req.Progress,
		Labels:       req.Labels,
		FolderID:     req.FolderID,
		CreatorID:    userID,
	}

	if err := h.testCaseStore.Create(r.Context(), tc, req.Steps); err != nil {
		if errors.Is(err, folder.ErrFolderNotFound) {
			respondError(w, http.StatusNotFound, "folder not found")
			return
		}
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "failed to create test case", logger.Fields{
			"error":     err.Error(),
			"folder_id": req.FolderID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to create test case")
		return
	}

	respondJSON(w, http.StatusCreated, tc)
}

// List handles listing test cases, optionally filtered by folder via the
// folderId query parameter.
func (h *TestCaseHandler) List(w http.ResponseWriter, r *http.Request) {
	var folderID *uuid.UUID
	if raw := r.URL.Query().Get("folderId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid folderId: must be a valid UUID")
			return
		}
		folderID = &id
	}

	cases, err := h.testCaseStore.List(r.Context(), folderID)
	if err != nil {
		h.logger.Error(r.Context(), "failed to list test cases", logger.Fields{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list test cases")
		return
	}

	respondJSON(w, http.StatusOK, cases)
}

// GetByID handles getting a single test case by ID.
func (h *TestCaseHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "test case")
	if !ok {
		return
	}

	tc, err := h.testCaseStore.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, testcase.ErrTestCaseNotFound) {
			respondError(w, http.StatusNotFound, "test case not found")
			return
		}
		h.logger.Error(r.Context(), "failed to get test case", logger.Fields{
			"error":        err.Error(),
			"test_case_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to get test case")
		return
	}

	respondJSON(w, http.StatusOK, tc)
}

// Update handles a merge-patch update of a test case. Every successful
// update bumps the version by one, including one that changes nothing.
func (h *TestCaseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "test case")
	if !ok {
		return
	}

	var req UpdateTestCaseRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var setters []testcase.UpdateSetter
	if req.Summary != nil {
		setters = append(setters, testcase.SetSummary(*req.Summary))
	}
	if req.Priority != nil {
		setters = append(setters, testcase.SetPriority(*req.Priority))
	}
	if req.Type != nil {
		setters = append(setters, testcase.SetType(*req.Type))
	}
	if req.ReviewStatus != nil {
		setters = append(setters, testcase.SetReviewStatus(*req.ReviewStatus))
	}
	if req.Progress != nil {
		setters = append(setters, testcase.SetProgress(*req.Progress))
	}
	if req.Labels != nil {
		setters = append(setters, testcase.SetLabels(*req.Labels))
	}

	// An empty patch is still a successful update and consumes a version.
	updated, err := h.testCaseStore.Update(r.Context(), id, setters...)
	if err != nil {
		if errors.Is(err, testcase.ErrTestCaseNotFound) {
			respondError(w, http.StatusNotFound, "test case not found")
			return
		}
		if isValidationError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "failed to update test case", logger.Fields{
			"error":        err.Error(),
			"test_case_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to update test case")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles deleting a test case and its steps.
func (h *TestCaseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "id", "test case")
	if !ok {
		return
	}

	if err := h.testCaseStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, testcase.ErrTestCaseNotFound) {
			respondError(w, http.StatusNotFound, "test case not found")
			return
		}
		h.logger.Error(r.Context(), "failed to delete test case", logger.Fields{
			"error":        err.Error(),
			"test_case_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to delete test case")
		return
	}

	respondSuccess(w, "test case deleted successfully")
}

// isValidationError reports whether err is a test case field validation error.
func isValidationError(err error) bool {
	return errors.Is(err, testcase.ErrInvalidSummary) ||
		errors.Is(err, testcase.ErrInvalidFolderID) ||
		errors.Is(err, testcase.ErrInvalidPriority) ||
		errors.Is(err, testcase.ErrInvalidType) ||
		errors.Is(err, testcase.ErrInvalidReviewStatus) ||
		errors.Is(err, testcase.ErrInvalidProgress) ||
		errors.Is(err, testcase.ErrInvalidStepSummary) ||
		errors.Is(err, testcase.ErrInvalidExpectedResult)
}
