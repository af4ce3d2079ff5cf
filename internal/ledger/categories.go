package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/service"
)

// CreateCategory defines a new category for an owner. The (owner, name,
// type) tuple must be unique; a duplicate fails with ErrAlreadyExists. A nil
// budget limit means no limit.
func (e *Engine) CreateCategory(ctx context.Context, owner, name string, categoryType model.CategoryType, budgetLimit *decimal.Decimal) (*model.Category, error) {
	if !categoryType.Valid() {
		return nil, fmt.Errorf("%w: unknown category type %q", ErrInvalidArgument, categoryType)
	}

	created, err := e.store.CreateCategory(ctx, &model.Category{
		Owner:       owner,
		Name:        name,
		Type:        categoryType,
		BudgetLimit: budgetLimit,
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return nil, fmt.Errorf("%w: category %q (%s)", ErrAlreadyExists, name, categoryType)
		}
		return nil, e.internal("create category", err)
	}

	return created, nil
}

// UpdateCategory renames a category and replaces its budget limit. Only the
// owner may update it, and the type is immutable once set.
func (e *Engine) UpdateCategory(ctx context.Context, owner string, categoryID int64, name string, budgetLimit *decimal.Decimal) (*model.Category, error) {
	var updated *model.Category

	err := e.withUnitOfWork(ctx, func(uow service.UnitOfWork) error {
		category, err := uow.GetCategoryByID(ctx, categoryID)
		if err != nil {
			return e.internal("get category", err)
		}
		if category == nil {
			return fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		if category.Owner != owner {
			return fmt.Errorf("%w: category %d", ErrAccessDenied, categoryID)
		}

		if err := uow.UpdateCategory(ctx, categoryID, name, budgetLimit); err != nil {
			if errors.Is(err, common.ErrDuplicateEntry) {
				return fmt.Errorf("%w: category %q (%s)", ErrAlreadyExists, name, category.Type)
			}
			return e.internal("update category", err)
		}

		category.Name = name
		category.BudgetLimit = budgetLimit
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("category updated", "owner", owner, "id", categoryID, "name", name)
	return updated, nil
}

// ListCategories returns all categories owned by an owner.
func (e *Engine) ListCategories(ctx context.Context, owner string) ([]model.Category, error) {
	categories, err := e.store.GetCategories(ctx, owner)
	if err != nil {
		return nil, e.internal("list categories", err)
	}
	return categories, nil
}

// getOrCreateTransferCategory resolves the reserved transfer category for
// one side of a transfer, creating it on first use. A lost creation race is
// resolved by re-reading the winning row; the store's uniqueness constraint
// is the final arbiter.
func (e *Engine) getOrCreateTransferCategory(ctx context.Context, s service.Storage, owner string, categoryType model.CategoryType) (*model.Category, error) {
	category, err := s.FindCategory(ctx, owner, model.TransferCategoryName, categoryType)
	if err != nil {
		return nil, e.internal("find transfer category", err)
	}
	if category != nil {
		return category, nil
	}

	created, err := s.CreateCategory(ctx, &model.Category{
		Owner: owner,
		Name:  model.TransferCategoryName,
		Type:  categoryType,
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, common.ErrDuplicateEntry) {
		return nil, e.internal("create transfer category", err)
	}

	// Another caller created it between our read and insert.
	category, err = s.FindCategory(ctx, owner, model.TransferCategoryName, categoryType)
	if err != nil {
		return nil, e.internal("re-read transfer category", err)
	}
	if category == nil {
		return nil, e.internal("re-read transfer category", errors.New("winning row vanished"))
	}
	return category, nil
}
