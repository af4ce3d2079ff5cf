package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/service"
)

// SaveTransaction inserts a transaction record. Records are immutable; there
// is deliberately no update or delete counterpart.
func (q queries) SaveTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransaction(txn); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (wallet_id, category_id, amount, description, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	now := time.Now().UTC()
	result, err := q.dbtx.ExecContext(ctx, query,
		txn.WalletID, txn.CategoryID, txn.Amount.String(), txn.Description, txn.Date.UTC(), now)
	if err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", mapConstraintErr(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	saved := *txn
	saved.ID = id
	saved.CreatedAt = now

	slog.Debug("saved transaction",
		"id", id,
		"wallet_id", txn.WalletID,
		"category_id", txn.CategoryID,
		"amount", txn.Amount)
	return &saved, nil
}

// GetTransactions returns a wallet's records joined with their category name
// and type, ordered by date then ID ascending so exports are reproducible.
func (q queries) GetTransactions(ctx context.Context, walletID int64, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.wallet_id, t.category_id, t.amount, t.description, t.date, t.created_at,
		       c.name, c.type
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.wallet_id = ?`
	args := []any{walletID}

	if filter.From != nil {
		query += ` AND t.date >= ?`
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		query += ` AND t.date <= ?`
		args = append(args, filter.To.UTC())
	}
	query += ` ORDER BY t.date ASC, t.id ASC`

	rows, err := q.dbtx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.WalletID, &t.CategoryID, &amount, &t.Description,
			&t.Date, &t.CreatedAt, &t.CategoryName, &t.CategoryType); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse transaction amount %q: %w", amount, err)
		}
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "wallet_id", walletID, "count", len(transactions))
	return transactions, nil
}

// SumExpensesByCategory totals the all-time magnitude recorded against one
// category of a wallet. Amounts are summed in Go so decimal arithmetic stays
// exact; SQLite would coerce the TEXT column to floating point.
func (q queries) SumExpensesByCategory(ctx context.Context, walletID, categoryID int64) (decimal.Decimal, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, err
	}

	query := `
		SELECT amount
		FROM transactions
		WHERE wallet_id = ? AND category_id = ?`

	rows, err := q.dbtx.QueryContext(ctx, query, walletID, categoryID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query category spend: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, fmt.Errorf("failed to scan amount: %w", err)
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to parse amount %q: %w", amount, err)
		}
		total = total.Add(parsed)
	}

	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("error iterating amounts: %w", err)
	}
	return total, nil
}
