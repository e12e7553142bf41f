package handlers

import (
	"errors"
	"net/http"

	"github.com/fitrack/backend/logger"
	"github.com/fitrack/backend/testcase"
)

// StepHandler handles test step-related requests.
type StepHandler struct {
	stepStore     testcase.StepStore
	testCaseStore testcase.Store
	logger        logger.Logger
}

// NewStepHandler creates a new step handler.
func NewStepHandler(stepStore testcase.StepStore, testCaseStore testcase.Store, log logger.Logger) *StepHandler {
	return &StepHandler{
		stepStore:     stepStore,
		testCaseStore: testCaseStore,
		logger:        log,
	}
}

// List handles listing a test case's steps in order.
func (h *StepHandler) List(w http.ResponseWriter, r *http.Request) {
	testCaseID, ok := parseUUIDOrRespond(w, r, "id", "test case")
	if !ok {
		return
	}

	// Distinguish "no steps" from "no such test case".
	if _, err := h.testCaseStore.GetByID(r.Context(), testCaseID); err != nil {
		if errors.Is(err, testcase.ErrTestCaseNotFound) {
			respondError(w, http.StatusNotFound, "test case not found")
			return
		}
		h.logger.Error(r.Context(), "failed to get test case", logger.Fields{
			"error":        err.Error(),
			"test_case_id": testCaseID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list steps")
		return
	}

	steps, err := h.stepStore.ListByTestCase(r.Context(), testCaseID)
	if err != nil {
		h.logger.Error(r.Context(), "failed to list steps", logger.Fields{
			"error":        err.Error(),
			"test_case_id": testCaseID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list steps")
		return
	}

	respondJSON(w, http.StatusOK, steps)
}

// Append handles adding a step at the end of a test case's sequence.
func (h *StepHandler) Append(w http.ResponseWriter, r *http.Request) {
	testCaseID, ok := parseUUIDOrRespond(w, r, "id", "test case")
	if !ok {
		return
	}

	var content testcase.StepContent
	if err := parseJSON(r, &content, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.stepStore.Append(r.Context(), testCaseID, content)
	if err != nil {
		if errors.Is(err, testcase.ErrTestCaseNotFound) {
			respondError(w, http.StatusNotFound, "test case not found")
			return
		}
		if errors.Is(err, testcase.ErrInvalidStepSummary) ||
			errors.Is(err, testcase.ErrInvalidExpectedResult) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "failed to append step", logger.Fields{
			"error":        err.Error(),
			"test_case_id": testCaseID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to append step")
		return
	}

	respondJSON(w, http.StatusCreated, step)
}

// Update handles replacing a step's content. The step number never changes
// under this operation.
func (h *StepHandler) Update(w http.ResponseWriter, r *http.Request) {
	stepID, ok := parseUUIDOrRespond(w, r, "step_id", "step")
	if !ok {
		return
	}

	var content testcase.StepContent
	if err := parseJSON(r, &content, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	step, err := h.stepStore.Update(r.Context(), stepID, content)
	if err != nil {
		if errors.Is(err, testcase.ErrStepNotFound) {
			respondError(w, http.StatusNotFound, "step not found")
			return
		}
		if errors.Is(err, testcase.ErrInvalidStepSummary) ||
			errors.Is(err, testcase.ErrInvalidExpectedResult) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "failed to update step", logger.Fields{
			"error":   err.Error(),
			"step_id": stepID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to update step")
		return
	}

	respondJSON(w, http.StatusOK, step)
}

// Delete handles removing a step. Surviving steps of the same test case are
// renumbered to a dense 1..N sequence.
func (h *StepHandler) Delete(w http.ResponseWriter, r *http.Request) {
	stepID, ok := parseUUIDOrRespond(w, r, "step_id", "step")
	if !ok {
		return
	}

	if err := h.stepStore.Delete(r.Context(), stepID); err != nil {
		if errors.Is(err, testcase.ErrStepNotFound) {
			respondError(w, http.StatusNotFound, "step not found")
			return
		}
		h.logger.Error(r.Context(), "failed to delete step", logger.Fields{
			"error":   err.Error(),
			"step_id": stepID.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to delete step")
		return
	}

	respondSuccess(w, "step deleted successfully")
}
