// Package service defines the contracts between the ledger engine and its
// collaborators, most importantly the Ledger Store.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/model"
)

// TransactionFilter bounds a transaction query to an inclusive date range.
// A nil bound leaves that side unbounded.
type TransactionFilter struct {
	From *time.Time
	To   *time.Time
}

// Storage is the Ledger Store contract consumed by the engine. Lookups
// return (nil, nil) when the row does not exist; the engine owns the
// translation into its caller-facing error taxonomy. Implementations map
// uniqueness-constraint violations to common.ErrDuplicateEntry so that
// creation races can be resolved by re-reading the winner.
type Storage interface {
	// Wallet operations.
	GetWallet(ctx context.Context, owner string) (*model.Wallet, error)
	CreateWallet(ctx context.Context, owner string) (*model.Wallet, error)
	// UpdateWalletBalance overwrites the stored balance for a wallet; it is
	// only called from inside a unit of work that read the balance it is
	// replacing.
	UpdateWalletBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error

	// Category operations.
	GetCategories(ctx context.Context, owner string) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	FindCategory(ctx context.Context, owner, name string, categoryType model.CategoryType) (*model.Category, error)
	// FindCategoriesByName returns every category of the owner with the given
	// name, expense before income, newest first within a type.
	FindCategoriesByName(ctx context.Context, owner, name string) ([]model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) (*model.Category, error)
	UpdateCategory(ctx context.Context, id int64, name string, budgetLimit *decimal.Decimal) error

	// Transaction operations.
	SaveTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	// GetTransactions returns the wallet's records joined with their category
	// name and type, ordered by date then ID ascending.
	GetTransactions(ctx context.Context, walletID int64, filter TransactionFilter) ([]model.Transaction, error)
	// SumExpensesByCategory totals the all-time magnitude recorded against
	// one category of a wallet.
	SumExpensesByCategory(ctx context.Context, walletID, categoryID int64) (decimal.Decimal, error)

	// Database management.
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (UnitOfWork, error)
	Close() error
}

// UnitOfWork groups reads and writes into one all-or-nothing operation,
// serialized against conflicting concurrent units touching the same
// wallet(s). Rollback after Commit is a no-op, so callers can defer it.
type UnitOfWork interface {
	Commit() error
	Rollback() error
	Storage
}

// RetryOptions configures retry behavior for collaborators that talk to
// flaky externals, like the Sheets writer. The engine itself never retries.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
