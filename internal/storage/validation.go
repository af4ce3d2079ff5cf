// Package storage provides the SQLite-backed Ledger Store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/finchley/coppermint/internal/model"
)

// Validation errors.
var (
	ErrNilContext      = errors.New("context cannot be nil")
	ErrEmptyString     = errors.New("string parameter cannot be empty")
	ErrNilParameter    = errors.New("parameter cannot be nil")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidRecord   = errors.New("invalid transaction record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateCategory validates a category before insert.
func validateCategory(category *model.Category) error {
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if strings.TrimSpace(category.Owner) == "" {
		return fmt.Errorf("%w: missing owner", ErrInvalidCategory)
	}
	if strings.TrimSpace(category.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidCategory)
	}
	if !category.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidCategory, category.Type)
	}
	if category.BudgetLimit != nil && category.BudgetLimit.IsNegative() {
		return fmt.Errorf("%w: negative budget limit", ErrInvalidCategory)
	}
	return nil
}

// validateTransaction validates a transaction record before insert.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.WalletID == 0 {
		return fmt.Errorf("%w: missing wallet", ErrInvalidRecord)
	}
	if txn.CategoryID == 0 {
		return fmt.Errorf("%w: missing category", ErrInvalidRecord)
	}
	if !txn.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidRecord)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	return nil
}
