package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/model"
)

func TestCreateCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		category *model.Category
		name     string
		wantErr  bool
	}{
		{
			name: "expense with budget",
			category: &model.Category{
				Owner:       "alice",
				Name:        "Groceries",
				Type:        model.CategoryTypeExpense,
				BudgetLimit: decPtr(t, "500"),
			},
		},
		{
			name: "income without budget",
			category: &model.Category{
				Owner: "alice",
				Name:  "Salary",
				Type:  model.CategoryTypeIncome,
			},
		},
		{
			name: "missing owner",
			category: &model.Category{
				Name: "Orphan",
				Type: model.CategoryTypeExpense,
			},
			wantErr: true,
		},
		{
			name: "unknown type",
			category: &model.Category{
				Owner: "alice",
				Name:  "Weird",
				Type:  model.CategoryType("savings"),
			},
			wantErr: true,
		},
		{
			name: "negative budget",
			category: &model.Category{
				Owner:       "alice",
				Name:        "Debt",
				Type:        model.CategoryTypeExpense,
				BudgetLimit: decPtr(t, "-1"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := store.CreateCategory(ctx, tt.category)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.Equal(t, tt.category.Name, created.Name)
		})
	}
}

func TestCreateCategory_DuplicateTriple(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	base := &model.Category{Owner: "alice", Name: "Food", Type: model.CategoryTypeExpense}
	_, err := store.CreateCategory(ctx, base)
	require.NoError(t, err)

	// Same (owner, name, type) is rejected.
	_, err = store.CreateCategory(ctx, base)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDuplicateEntry))

	// Same name under the other type is a distinct category.
	_, err = store.CreateCategory(ctx, &model.Category{
		Owner: "alice", Name: "Food", Type: model.CategoryTypeIncome,
	})
	require.NoError(t, err)

	// Same name for a different owner is also fine.
	_, err = store.CreateCategory(ctx, &model.Category{
		Owner: "bob", Name: "Food", Type: model.CategoryTypeExpense,
	})
	require.NoError(t, err)
}

func TestFindCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, &model.Category{
		Owner: "alice", Name: "Rent", Type: model.CategoryTypeExpense, BudgetLimit: decPtr(t, "1200.50"),
	})
	require.NoError(t, err)

	found, err := store.FindCategory(ctx, "alice", "Rent", model.CategoryTypeExpense)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	require.NotNil(t, found.BudgetLimit)
	assert.Equal(t, "1200.5", found.BudgetLimit.String())

	missing, err := store.FindCategory(ctx, "alice", "Rent", model.CategoryTypeIncome)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindCategoriesByName_ExpenseFirst(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	income, err := store.CreateCategory(ctx, &model.Category{
		Owner: "alice", Name: "Gifts", Type: model.CategoryTypeIncome,
	})
	require.NoError(t, err)
	expense, err := store.CreateCategory(ctx, &model.Category{
		Owner: "alice", Name: "Gifts", Type: model.CategoryTypeExpense,
	})
	require.NoError(t, err)

	found, err := store.FindCategoriesByName(ctx, "alice", "Gifts")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, expense.ID, found[0].ID, "expense category resolves first")
	assert.Equal(t, income.ID, found[1].ID)
}

func TestFindCategoriesByName_DoesNotCrossOwners(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateCategory(ctx, &model.Category{
		Owner: "bob", Name: "Food", Type: model.CategoryTypeExpense,
	})
	require.NoError(t, err)

	found, err := store.FindCategoriesByName(ctx, "alice", "Food")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestUpdateCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	created, err := store.CreateCategory(ctx, &model.Category{
		Owner: "alice", Name: "Food", Type: model.CategoryTypeExpense, BudgetLimit: decPtr(t, "300"),
	})
	require.NoError(t, err)

	require.NoError(t, store.UpdateCategory(ctx, created.ID, "Dining", nil))

	got, err := store.GetCategoryByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dining", got.Name)
	assert.Nil(t, got.BudgetLimit, "nil budget limit clears the ceiling")
	assert.Equal(t, model.CategoryTypeExpense, got.Type, "type never changes")
}

func TestUpdateCategory_UnknownID(t *testing.T) {
	store := createTestStorage(t)

	err := store.UpdateCategory(context.Background(), 9999, "Nope", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGetCategories_SortedByName(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"Zoo", "Food", "Rent"} {
		_, err := store.CreateCategory(ctx, &model.Category{
			Owner: "alice", Name: name, Type: model.CategoryTypeExpense,
		})
		require.NoError(t, err)
	}

	categories, err := store.GetCategories(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, "Rent", categories[1].Name)
	assert.Equal(t, "Zoo", categories[2].Name)
}
