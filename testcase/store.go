package testcase

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the interface for test case persistence operations.
// Create and Delete are composite: they also maintain step records and the
// owning folder's cached child count, each inside a single transaction.
type Store interface {
	// Create generates the next display key, persists the test case with
	// version 1, persists the initial steps numbered 1..k in the given
	// order, and increments the owning folder's cached count.
	Create(ctx context.Context, tc *TestCase, initialSteps []StepContent) error

	// GetByID retrieves a test case with its steps (ordered) and folder.
	GetByID(ctx context.Context, id uuid.UUID) (*TestCase, error)

	// Update applies the given setters and unconditionally bumps the
	// version by one, even when the merged state is unchanged. Returns the
	// full merged record.
	Update(ctx context.Context, id uuid.UUID, setters ...UpdateSetter) (*TestCase, error)

	// Delete removes the test case and all its steps, and decrements the
	// owning folder's cached count (clamped at zero).
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves test cases ordered by creation time descending, with
	// steps and folder included. A non-nil folderID filters by folder.
	List(ctx context.Context, folderID *uuid.UUID) ([]*TestCase, error)
}

// StepStore defines the interface for step persistence operations.
type StepStore interface {
	// Append adds a step at the end of the test case's sequence
	// (number = current max + 1, or 1 when none exist).
	Append(ctx context.Context, testCaseID uuid.UUID, content StepContent) (*Step, error)

	// Update replaces the step's content in place. The step number is
	// immutable under this operation.
	Update(ctx context.Context, stepID uuid.UUID, content StepContent) (*Step, error)

	// Delete removes the step and renumbers the surviving steps of the
	// same test case to 1..N, preserving their relative order.
	Delete(ctx context.Context, stepID uuid.UUID) error

	// ListByTestCase retrieves all steps of a test case ordered by step
	// number ascending.
	ListByTestCase(ctx context.Context, testCaseID uuid.UUID) ([]*Step, error)
}

// UpdateSetter is a function that mutates a test case field during Update.
type UpdateSetter func(*TestCase) error
