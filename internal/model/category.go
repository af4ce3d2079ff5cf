package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType indicates whether a category records income or expense.
type CategoryType string

const (
	// CategoryTypeIncome represents categories whose transactions credit the wallet.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories whose transactions debit the wallet.
	CategoryTypeExpense CategoryType = "expense"
)

// Valid reports whether the category type is one of the known values.
func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Sign returns the signed effect (+1 income, -1 expense) a transaction in a
// category of this type has on the wallet balance.
func (t CategoryType) Sign() int {
	if t == CategoryTypeExpense {
		return -1
	}
	return 1
}

// TransferCategoryName is the reserved category name used by peer-to-peer
// transfers. It exists at most once per type per owner and is created lazily.
const TransferCategoryName = "Transfers"

// Category is a named bucket for an owner's transactions. The tuple
// (Owner, Name, Type) is unique; a name may repeat across types but never
// within one.
type Category struct {
	CreatedAt   time.Time
	BudgetLimit *decimal.Decimal
	Owner       string
	Name        string
	Type        CategoryType
	ID          int64
}

// HasBudget reports whether a spending ceiling is set. Budget limits are
// meaningful only for expense categories.
func (c *Category) HasBudget() bool {
	return c.Type == CategoryTypeExpense && c.BudgetLimit != nil
}
