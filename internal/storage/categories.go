package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/model"
)

const categoryColumns = `id, owner, name, type, budget_limit, created_at`

// GetCategories returns all categories owned by an owner.
func (q queries) GetCategories(ctx context.Context, owner string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner = ?
		ORDER BY name, type`

	rows, err := q.dbtx.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories, err := collectCategories(rows)
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved categories", "owner", owner, "count", len(categories))
	return categories, nil
}

// GetCategoryByID returns a category by its identifier, or (nil, nil) when
// no such category exists.
func (q queries) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = ?`

	return scanCategory(q.dbtx.QueryRowContext(ctx, query, id))
}

// FindCategory returns the owner's category with the given name and type,
// or (nil, nil) when none exists.
func (q queries) FindCategory(ctx context.Context, owner, name string, categoryType model.CategoryType) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner = ? AND name = ? AND type = ?`

	return scanCategory(q.dbtx.QueryRowContext(ctx, query, owner, name, string(categoryType)))
}

// FindCategoriesByName returns every category of the owner with the given
// name: expense before income, newest first within a type. The ordering is
// the documented tie-break for resolving a transaction's category when both
// types share a name.
func (q queries) FindCategoriesByName(ctx context.Context, owner, name string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner = ? AND name = ?
		ORDER BY type ASC, created_at DESC, id DESC`

	rows, err := q.dbtx.QueryContext(ctx, query, owner, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories by name: %w", err)
	}
	defer rows.Close()

	return collectCategories(rows)
}

// CreateCategory inserts a new category. A (owner, name, type) duplicate
// fails with common.ErrDuplicateEntry; the UNIQUE constraint is the final
// arbiter under concurrent creation.
func (q queries) CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO categories (owner, name, type, budget_limit, created_at)
		VALUES (?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := q.dbtx.ExecContext(ctx, query,
		category.Owner, category.Name, string(category.Type), budgetLimitArg(category.BudgetLimit), now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", mapConstraintErr(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	created := *category
	created.ID = id
	created.CreatedAt = now

	slog.Info("created category",
		"owner", category.Owner,
		"name", category.Name,
		"type", category.Type,
		"id", id)
	return &created, nil
}

// UpdateCategory changes a category's name and budget limit. Type is
// immutable once set. Passing a nil budget limit clears it.
func (q queries) UpdateCategory(ctx context.Context, id int64, name string, budgetLimit *decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}
	if budgetLimit != nil && budgetLimit.IsNegative() {
		return fmt.Errorf("%w: negative budget limit", ErrInvalidCategory)
	}

	query := `UPDATE categories SET name = ?, budget_limit = ? WHERE id = ?`

	result, err := q.dbtx.ExecContext(ctx, query, name, budgetLimitArg(budgetLimit), id)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", mapConstraintErr(err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %d", common.ErrNotFound, id)
	}

	slog.Info("updated category", "id", id, "name", name)
	return nil
}

func budgetLimitArg(limit *decimal.Decimal) any {
	if limit == nil {
		return nil
	}
	return limit.String()
}

func scanCategory(row *sql.Row) (*model.Category, error) {
	var c model.Category
	var budgetLimit sql.NullString
	err := row.Scan(&c.ID, &c.Owner, &c.Name, &c.Type, &budgetLimit, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	if err := parseBudgetLimit(&c, budgetLimit); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCategories(rows *sql.Rows) ([]model.Category, error) {
	var categories []model.Category
	for rows.Next() {
		var c model.Category
		var budgetLimit sql.NullString
		if err := rows.Scan(&c.ID, &c.Owner, &c.Name, &c.Type, &budgetLimit, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if err := parseBudgetLimit(&c, budgetLimit); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

func parseBudgetLimit(c *model.Category, limit sql.NullString) error {
	if !limit.Valid {
		return nil
	}
	parsed, err := decimal.NewFromString(limit.String)
	if err != nil {
		return fmt.Errorf("failed to parse budget limit %q: %w", limit.String, err)
	}
	c.BudgetLimit = &parsed
	return nil
}
