package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchley/coppermint/internal/common"
)

func TestCreateWallet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	wallet, err := store.CreateWallet(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, wallet)
	assert.Equal(t, "alice", wallet.Owner)
	assert.True(t, wallet.Balance.IsZero(), "new wallet must start at zero")
	assert.NotZero(t, wallet.ID)
}

func TestCreateWallet_DuplicateOwner(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.CreateWallet(ctx, "alice")
	require.NoError(t, err)

	_, err = store.CreateWallet(ctx, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDuplicateEntry), "expected duplicate entry, got %v", err)
}

func TestGetWallet_NotFound(t *testing.T) {
	store := createTestStorage(t)

	wallet, err := store.GetWallet(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, wallet, "unknown owner returns nil without error")
}

func TestGetWallet_EmptyOwner(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetWallet(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyString))
}

func TestUpdateWalletBalance(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	wallet, err := store.CreateWallet(ctx, "alice")
	require.NoError(t, err)

	newBalance := mustDec(t, "150.75")
	require.NoError(t, store.UpdateWalletBalance(ctx, wallet.ID, newBalance))

	got, err := store.GetWallet(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Balance.Equal(newBalance), "want %s, got %s", newBalance, got.Balance)
}

func TestUpdateWalletBalance_UnknownWallet(t *testing.T) {
	store := createTestStorage(t)

	err := store.UpdateWalletBalance(context.Background(), 9999, mustDec(t, "10"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestWalletBalance_ExactDecimalRoundTrip(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	wallet, err := store.CreateWallet(ctx, "alice")
	require.NoError(t, err)

	// A value that is not representable in binary floating point.
	balance := mustDec(t, "0.30")
	require.NoError(t, store.UpdateWalletBalance(ctx, wallet.ID, balance))

	got, err := store.GetWallet(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "0.3", got.Balance.String())
}
