package ledger

import (
	"context"
	"fmt"

	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/service"
)

// ExportTransactions returns the owner's full history as owner-facing
// records, stripped of wallet linkage and ordered by date then ID ascending
// so the export is reproducible.
func (e *Engine) ExportTransactions(ctx context.Context, owner string) ([]model.ExportedTransaction, error) {
	wallet, err := e.store.GetWallet(ctx, owner)
	if err != nil {
		return nil, e.internal("get wallet", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("%w: owner %q", ErrNotFound, owner)
	}

	transactions, err := e.store.GetTransactions(ctx, wallet.ID, service.TransactionFilter{})
	if err != nil {
		return nil, e.internal("get transactions", err)
	}

	exported := make([]model.ExportedTransaction, 0, len(transactions))
	for _, t := range transactions {
		exported = append(exported, model.ExportedTransaction{
			ID:          t.ID,
			Category:    t.CategoryName,
			Amount:      t.Amount,
			Description: t.Description,
			Date:        t.Date,
		})
	}
	return exported, nil
}
