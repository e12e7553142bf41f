package testcase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCase_ApplyDefaults(t *testing.T) {
	t.Run("empty fields take defaults", func(t *testing.T) {
		tc := &TestCase{}
		tc.ApplyDefaults()
		assert.Equal(t, PriorityMedium, tc.Priority)
		assert.Equal(t, TypeFunctional, tc.Type)
		assert.Equal(t, ReviewStatusNew, tc.ReviewStatus)
		assert.Equal(t, ProgressTodo, tc.Progress)
		assert.Equal(t, Labels{}, tc.Labels)
	})

	t.Run("set fields are kept", func(t *testing.T) {
		tc := &TestCase{
			Priority:     PriorityCritical,
			Type:         TypePerformance,
			ReviewStatus: ReviewStatusApproved,
			Progress:     ProgressDone,
			Labels:       Labels{"smoke"},
		}
		tc.ApplyDefaults()
		assert.Equal(t, PriorityCritical, tc.Priority)
		assert.Equal(t, TypePerformance, tc.Type)
		assert.Equal(t, ReviewStatusApproved, tc.ReviewStatus)
		assert.Equal(t, ProgressDone, tc.Progress)
		assert.Equal(t, Labels{"smoke"}, tc.Labels)
	})
}

func TestTestCase_Validate(t *testing.T) {
	valid := func() *TestCase {
		tc := newTestCase(uuid.New(), "Login works")
		tc.ApplyDefaults()
		return tc
	}

	t.Run("valid test case", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing summary", func(t *testing.T) {
		tc := valid()
		tc.Summary = ""
		assert.ErrorIs(t, tc.Validate(), ErrInvalidSummary)
	})

	t.Run("missing folder", func(t *testing.T) {
		tc := valid()
		tc.FolderID = uuid.Nil
		assert.ErrorIs(t, tc.Validate(), ErrInvalidFolderID)
	})

	t.Run("unknown priority", func(t *testing.T) {
		tc := valid()
		tc.Priority = "URGENT"
		assert.ErrorIs(t, tc.Validate(), ErrInvalidPriority)
	})

	t.Run("unknown progress", func(t *testing.T) {
		tc := valid()
		tc.Progress = "BLOCKED"
		assert.ErrorIs(t, tc.Validate(), ErrInvalidProgress)
	})
}

func TestSetters(t *testing.T) {
	t.Run("invalid enum values are rejected", func(t *testing.T) {
		tc := newTestCase(uuid.New(), "Summary")
		tc.ApplyDefaults()

		assert.ErrorIs(t, SetPriority("URGENT")(tc), ErrInvalidPriority)
		assert.ErrorIs(t, SetType("EXPLORATORY")(tc), ErrInvalidType)
		assert.ErrorIs(t, SetReviewStatus("PENDING")(tc), ErrInvalidReviewStatus)
		assert.ErrorIs(t, SetProgress("BLOCKED")(tc), ErrInvalidProgress)
		assert.ErrorIs(t, SetSummary("")(tc), ErrInvalidSummary)

		// Nothing was mutated by the failed setters
		assert.Equal(t, PriorityMedium, tc.Priority)
		assert.Equal(t, TypeFunctional, tc.Type)
	})

	t.Run("labels keep order and duplicates", func(t *testing.T) {
		tc := newTestCase(uuid.New(), "Summary")
		require.NoError(t, SetLabels(Labels{"b", "a", "b"})(tc))
		assert.Equal(t, Labels{"b", "a", "b"}, tc.Labels)
	})

	t.Run("nil labels become an empty list", func(t *testing.T) {
		tc := newTestCase(uuid.New(), "Summary")
		tc.Labels = Labels{"old"}
		require.NoError(t, SetLabels(nil)(tc))
		assert.Equal(t, Labels{}, tc.Labels)
	})
}
