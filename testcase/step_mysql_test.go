package testcase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStepMySQLStore_Append(t *testing.T) {
	t.Run("first step gets number one", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "Stepless")
		require.NoError(t, store.Create(ctx, tc, nil))

		step, err := stepStore.Append(ctx, tc.ID, StepContent{
			Summary:        "open the page",
			ExpectedResult: "page is shown",
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, step.ID)
		assert.Equal(t, uint(1), step.StepNumber)
	})

	t.Run("append continues after the initial steps", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "With steps")
		require.NoError(t, store.Create(ctx, tc, stepContents("a", "b")))

		step, err := stepStore.Append(ctx, tc.ID, StepContent{
			Summary:        "c",
			ExpectedResult: "done",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), step.StepNumber)
	})

	t.Run("schema rejects a duplicate step number", func(t *testing.T) {
		db, store, _ := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "Guarded")
		require.NoError(t, store.Create(ctx, tc, stepContents("a", "b")))

		// A writer that bypasses the serialized append path still cannot
		// produce two steps with the same number.
		dup := &Step{
			TestCaseID:     tc.ID,
			StepNumber:     2,
			Summary:        "clone of b",
			ExpectedResult: "never persisted",
		}
		assert.ErrorIs(t, db.Create(dup).Error, gorm.ErrDuplicatedKey)

		retrieved, err := store.GetByID(ctx, tc.ID)
		require.NoError(t, err)
		assert.Len(t, retrieved.Steps, 2)
	})

	t.Run("missing test case returns error", func(t *testing.T) {
		_, _, stepStore := setupTestStores(t)
		_, err := stepStore.Append(context.Background(), uuid.New(), StepContent{
			Summary:        "s",
			ExpectedResult: "e",
		})
		assert.ErrorIs(t, err, ErrTestCaseNotFound)
	})

	t.Run("missing summary returns error", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "Target")
		require.NoError(t, store.Create(ctx, tc, nil))

		_, err := stepStore.Append(ctx, tc.ID, StepContent{ExpectedResult: "e"})
		assert.ErrorIs(t, err, ErrInvalidStepSummary)
	})

	t.Run("missing expected result returns error", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "Target")
		require.NoError(t, store.Create(ctx, tc, nil))

		_, err := stepStore.Append(ctx, tc.ID, StepContent{Summary: "s"})
		assert.ErrorIs(t, err, ErrInvalidExpectedResult)
	})
}

func TestStepMySQLStore_Update(t *testing.T) {
	t.Run("content is replaced, number is not", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "Editable")
		require.NoError(t, store.Create(ctx, tc, stepContents("a", "b")))

		retrieved, err := store.GetByID(ctx, tc.ID)
		require.NoError(t, err)
		target := retrieved.Steps[1]

		updated, err := stepStore.Update(ctx, target.ID, StepContent{
			Summary:        "b revised",
			PreCondition:   "logged in",
			TestData:       "user=admin",
			ExpectedResult: "revised expectation",
		})
		require.NoError(t, err)
		assert.Equal(t, "b revised", updated.Summary)
		assert.Equal(t, "logged in", updated.PreCondition)
		assert.Equal(t, "user=admin", updated.TestData)
		assert.Equal(t, "revised expectation", updated.ExpectedResult)
		assert.Equal(t, uint(2), updated.StepNumber)
	})

	t.Run("update non-existent returns error", func(t *testing.T) {
		_, _, stepStore := setupTestStores(t)
		_, err := stepStore.Update(context.Background(), uuid.New(), StepContent{
			Summary:        "s",
			ExpectedResult: "e",
		})
		assert.ErrorIs(t, err, ErrStepNotFound)
	})

	t.Run("invalid content returns error", func(t *testing.T) {
		_, _, stepStore := setupTestStores(t)
		_, err := stepStore.Update(context.Background(), uuid.New(), StepContent{})
		assert.ErrorIs(t, err, ErrInvalidStepSummary)
	})
}

func TestStepMySQLStore_Delete(t *testing.T) {
	t.Run("deleting the middle step renumbers the rest", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "Renumbered")
		require.NoError(t, store.Create(ctx, tc, stepContents("a", "b", "c")))

		retrieved, err := store.GetByID(ctx, tc.ID)
		require.NoError(t, err)
		middle := retrieved.Steps[1]

		require.NoError(t, stepStore.Delete(ctx, middle.ID))

		steps, err := stepStore.ListByTestCase(ctx, tc.ID)
		require.NoError(t, err)
		require.Len(t, steps, 2)
		assert.Equal(t, uint(1), steps[0].StepNumber)
		assert.Equal(t, "a", steps[0].Summary)
		assert.Equal(t, uint(2), steps[1].StepNumber)
		assert.Equal(t, "c", steps[1].Summary)
	})

	t.Run("numbers stay dense through appends and removals", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		tc := newTestCase(f.ID, "Dense")
		require.NoError(t, store.Create(ctx, tc, stepContents("a", "b", "c", "d")))

		assertDense := func() {
			steps, err := stepStore.ListByTestCase(ctx, tc.ID)
			require.NoError(t, err)
			for i, s := range steps {
				assert.Equal(t, uint(i+1), s.StepNumber)
			}
		}

		steps, err := stepStore.ListByTestCase(ctx, tc.ID)
		require.NoError(t, err)

		require.NoError(t, stepStore.Delete(ctx, steps[0].ID))
		assertDense()

		_, err = stepStore.Append(ctx, tc.ID, StepContent{Summary: "e", ExpectedResult: "f"})
		require.NoError(t, err)
		assertDense()

		steps, err = stepStore.ListByTestCase(ctx, tc.ID)
		require.NoError(t, err)
		require.NoError(t, stepStore.Delete(ctx, steps[len(steps)-1].ID))
		assertDense()
	})

	t.Run("steps of other test cases are untouched", func(t *testing.T) {
		db, store, stepStore := setupTestStores(t)
		ctx := context.Background()
		f := createFolderFixture(t, db)

		one := newTestCase(f.ID, "One")
		require.NoError(t, store.Create(ctx, one, stepContents("a", "b")))
		two := newTestCase(f.ID, "Two")
		require.NoError(t, store.Create(ctx, two, stepContents("x", "y")))

		oneSteps, err := stepStore.ListByTestCase(ctx, one.ID)
		require.NoError(t, err)
		require.NoError(t, stepStore.Delete(ctx, oneSteps[0].ID))

		twoSteps, err := stepStore.ListByTestCase(ctx, two.ID)
		require.NoError(t, err)
		require.Len(t, twoSteps, 2)
		assert.Equal(t, uint(1), twoSteps[0].StepNumber)
		assert.Equal(t, uint(2), twoSteps[1].StepNumber)
	})

	t.Run("delete non-existent returns error", func(t *testing.T) {
		_, _, stepStore := setupTestStores(t)
		err := stepStore.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrStepNotFound)
	})
}

func TestStepMySQLStore_ListByTestCase(t *testing.T) {
	db, store, stepStore := setupTestStores(t)
	ctx := context.Background()
	f := createFolderFixture(t, db)

	tc := newTestCase(f.ID, "Listed")
	require.NoError(t, store.Create(ctx, tc, stepContents("first", "second", "third")))

	steps, err := stepStore.ListByTestCase(ctx, tc.ID)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "first", steps[0].Summary)
	assert.Equal(t, "second", steps[1].Summary)
	assert.Equal(t, "third", steps[2].Summary)

	t.Run("unknown test case yields empty list", func(t *testing.T) {
		steps, err := stepStore.ListByTestCase(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, steps)
	})
}
