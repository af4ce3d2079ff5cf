package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/testutil"
)

func TestExportTransactions(t *testing.T) {
	engine, store := newTestEngine(t)
	ctx := context.Background()

	testutil.SeedWallet(t, store, "alice", testutil.Dec(t, "1000"))
	testutil.SeedCategory(t, store, "alice", "Food", model.CategoryTypeExpense, nil)
	testutil.SeedCategory(t, store, "alice", "Salary", model.CategoryTypeIncome, nil)

	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
	}
	_, err := engine.AddTransaction(ctx, "alice", "Food", testutil.Dec(t, "30"), "lunch", day(20))
	require.NoError(t, err)
	_, err = engine.AddTransaction(ctx, "alice", "Salary", testutil.Dec(t, "100"), "pay", day(10))
	require.NoError(t, err)

	exported, err := engine.ExportTransactions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, exported, 2)

	// Date-ascending regardless of insert order.
	assert.Equal(t, "Salary", exported[0].Category)
	assert.Equal(t, "pay", exported[0].Description)
	assert.Equal(t, "100", exported[0].Amount.String())
	assert.Equal(t, "Food", exported[1].Category)
}

func TestExportTransactions_EmptyHistory(t *testing.T) {
	engine, store := newTestEngine(t)

	testutil.SeedWallet(t, store, "alice", testutil.Dec(t, "0"))

	exported, err := engine.ExportTransactions(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, exported)
	assert.NotNil(t, exported, "empty export is a slice, not nil")
}

func TestExportTransactions_UnknownOwner(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.ExportTransactions(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}
