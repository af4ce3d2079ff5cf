package ledger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	limit := testutil.Dec(t, "500")
	category, err := engine.CreateCategory(ctx, "alice", "Groceries", model.CategoryTypeExpense, &limit)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", category.Name)
	assert.Equal(t, model.CategoryTypeExpense, category.Type)
	require.NotNil(t, category.BudgetLimit)
	assert.True(t, category.BudgetLimit.Equal(limit))
}

func TestCreateCategory_InvalidType(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.CreateCategory(context.Background(), "alice", "Weird", model.CategoryType("savings"), nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCreateCategory_Duplicate(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateCategory(ctx, "alice", "Food", model.CategoryTypeExpense, nil)
	require.NoError(t, err)

	_, err = engine.CreateCategory(ctx, "alice", "Food", model.CategoryTypeExpense, nil)
	require.ErrorIs(t, err, ErrAlreadyExists)

	// Same name under the other type is allowed.
	_, err = engine.CreateCategory(ctx, "alice", "Food", model.CategoryTypeIncome, nil)
	require.NoError(t, err)
}

func TestCreateCategory_ConcurrentSameTriple(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	// Two simultaneous creates of the same (owner, name, type): the UNIQUE
	// constraint arbitrates, so exactly one insert wins and the loser gets
	// ErrAlreadyExists instead of a second row.
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.CreateCategory(ctx, "alice", "Food", model.CategoryTypeExpense, nil)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		require.ErrorIs(t, err, ErrAlreadyExists)
		rejected++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)

	categories, err := engine.ListCategories(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestUpdateCategory(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	created, err := engine.CreateCategory(ctx, "alice", "Food", model.CategoryTypeExpense, nil)
	require.NoError(t, err)

	limit := testutil.Dec(t, "250")
	updated, err := engine.UpdateCategory(ctx, "alice", created.ID, "Dining", &limit)
	require.NoError(t, err)
	assert.Equal(t, "Dining", updated.Name)
	require.NotNil(t, updated.BudgetLimit)
	assert.True(t, updated.BudgetLimit.Equal(limit))
	assert.Equal(t, model.CategoryTypeExpense, updated.Type)
}

func TestUpdateCategory_WrongOwner(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	created, err := engine.CreateCategory(ctx, "alice", "Food", model.CategoryTypeExpense, nil)
	require.NoError(t, err)

	_, err = engine.UpdateCategory(ctx, "mallory", created.ID, "Stolen", nil)
	require.ErrorIs(t, err, ErrAccessDenied)

	// The category is untouched.
	categories, err := engine.ListCategories(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Food", categories[0].Name)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.UpdateCategory(context.Background(), "alice", 9999, "Nope", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCategory_RenameCollision(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateCategory(ctx, "alice", "Food", model.CategoryTypeExpense, nil)
	require.NoError(t, err)
	other, err := engine.CreateCategory(ctx, "alice", "Dining", model.CategoryTypeExpense, nil)
	require.NoError(t, err)

	_, err = engine.UpdateCategory(ctx, "alice", other.ID, "Food", nil)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestListCategories(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.CreateCategory(ctx, "alice", "Rent", model.CategoryTypeExpense, nil)
	require.NoError(t, err)
	_, err = engine.CreateCategory(ctx, "alice", "Salary", model.CategoryTypeIncome, nil)
	require.NoError(t, err)
	_, err = engine.CreateCategory(ctx, "bob", "Rent", model.CategoryTypeExpense, nil)
	require.NoError(t, err)

	categories, err := engine.ListCategories(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	for _, c := range categories {
		assert.Equal(t, "alice", c.Owner)
	}
}
