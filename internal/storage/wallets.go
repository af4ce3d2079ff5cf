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

// GetWallet returns the wallet for an owner, or (nil, nil) when the owner
// is unknown.
func (q queries) GetWallet(ctx context.Context, owner string) (*model.Wallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, owner, balance, created_at
		FROM wallets
		WHERE owner = ?`

	return scanWallet(q.dbtx.QueryRowContext(ctx, query, owner))
}

// CreateWallet registers a zero-balance wallet for an owner.
func (q queries) CreateWallet(ctx context.Context, owner string) (*model.Wallet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(owner, "owner"); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO wallets (owner, balance, created_at)
		VALUES (?, '0', ?)`

	now := time.Now().UTC()
	result, err := q.dbtx.ExecContext(ctx, query, owner, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", mapConstraintErr(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet ID: %w", err)
	}

	slog.Info("created wallet", "owner", owner, "id", id)
	return &model.Wallet{
		ID:        id,
		Owner:     owner,
		Balance:   decimal.Zero,
		CreatedAt: now,
	}, nil
}

// UpdateWalletBalance overwrites a wallet's stored balance. Callers hold a
// unit of work that read the balance being replaced.
func (q queries) UpdateWalletBalance(ctx context.Context, walletID int64, balance decimal.Decimal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	query := `UPDATE wallets SET balance = ? WHERE id = ?`

	result, err := q.dbtx.ExecContext(ctx, query, balance.String(), walletID)
	if err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: wallet %d", common.ErrNotFound, walletID)
	}

	slog.Debug("updated wallet balance", "wallet_id", walletID, "balance", balance)
	return nil
}

func scanWallet(row *sql.Row) (*model.Wallet, error) {
	var w model.Wallet
	var balance string
	err := row.Scan(&w.ID, &w.Owner, &balance, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Wallet not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet: %w", err)
	}

	w.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return nil, fmt.Errorf("failed to parse wallet balance %q: %w", balance, err)
	}
	return &w, nil
}
