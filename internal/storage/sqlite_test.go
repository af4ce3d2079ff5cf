package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
)

// Helper function to create migrated test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("invalid decimal %q: %v", s, err)
	}
	return d
}

func decPtr(t *testing.T, s string) *decimal.Decimal {
	t.Helper()
	d := mustDec(t, s)
	return &d
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	// Running migrations again against a current schema is a no-op.
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

func TestBeginTx_RollbackDiscardsWrites(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	uow, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	if _, err := uow.CreateWallet(ctx, "alice"); err != nil {
		t.Fatalf("failed to create wallet in transaction: %v", err)
	}
	if err := uow.Rollback(); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}

	wallet, err := store.GetWallet(ctx, "alice")
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if wallet != nil {
		t.Errorf("expected rolled-back wallet to be absent, got %+v", wallet)
	}
}

func TestBeginTx_CommitPersistsWrites(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	uow, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	if _, err := uow.CreateWallet(ctx, "bob"); err != nil {
		t.Fatalf("failed to create wallet in transaction: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	wallet, err := store.GetWallet(ctx, "bob")
	if err != nil {
		t.Fatalf("failed to get wallet: %v", err)
	}
	if wallet == nil {
		t.Fatal("expected committed wallet to exist")
	}
}
