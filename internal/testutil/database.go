// Package testutil provides shared test fixtures: a migrated temp-file
// database with seeded wallets and categories.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/storage"
)

// SetupTestDB creates a migrated SQLite database in a temp directory and
// registers cleanup.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedWallet registers a wallet and, when balance is non-zero, sets its
// balance directly. Seeding bypasses the engine on purpose: fixtures should
// not depend on the code under test.
func SeedWallet(t *testing.T, store *storage.SQLiteStorage, owner string, balance decimal.Decimal) *model.Wallet {
	t.Helper()

	ctx := context.Background()
	wallet, err := store.CreateWallet(ctx, owner)
	if err != nil {
		t.Fatalf("failed to seed wallet %q: %v", owner, err)
	}

	if !balance.IsZero() {
		if err := store.UpdateWalletBalance(ctx, wallet.ID, balance); err != nil {
			t.Fatalf("failed to set balance for %q: %v", owner, err)
		}
		wallet.Balance = balance
	}
	return wallet
}

// SeedCategory creates a category for an owner. A nil budget means no limit.
func SeedCategory(t *testing.T, store *storage.SQLiteStorage, owner, name string, categoryType model.CategoryType, budget *decimal.Decimal) *model.Category {
	t.Helper()

	category, err := store.CreateCategory(context.Background(), &model.Category{
		Owner:       owner,
		Name:        name,
		Type:        categoryType,
		BudgetLimit: budget,
	})
	if err != nil {
		t.Fatalf("failed to seed category %q: %v", name, err)
	}
	return category
}

// Dec parses a decimal literal for test fixtures.
func Dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}
