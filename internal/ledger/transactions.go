package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/service"
)

// AddTransaction records a single-wallet movement. The category is resolved
// by name among the owner's categories; when an income and an expense
// category share the name, the expense one wins (documented tie-break:
// solvency-checked spends must resolve deterministically). A zero date means
// now.
//
// The solvency check, balance write, and record insert happen in one unit of
// work, so a rejected transaction leaves balance and history untouched.
func (e *Engine) AddTransaction(ctx context.Context, owner, categoryName string, amount decimal.Decimal, description string, date time.Time) (*model.TransactionResult, error) {
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var result model.TransactionResult

	err := e.withUnitOfWork(ctx, func(uow service.UnitOfWork) error {
		wallet, err := uow.GetWallet(ctx, owner)
		if err != nil {
			return e.internal("get wallet", err)
		}
		if wallet == nil {
			return fmt.Errorf("%w: owner %q", ErrNotFound, owner)
		}

		candidates, err := uow.FindCategoriesByName(ctx, owner, categoryName)
		if err != nil {
			return e.internal("find category", err)
		}
		if len(candidates) == 0 {
			return fmt.Errorf("%w: %q", ErrCategoryNotFound, categoryName)
		}
		category := &candidates[0]

		var balance decimal.Decimal
		if category.Type == model.CategoryTypeExpense {
			if wallet.Balance.LessThan(amount) {
				return fmt.Errorf("%w: balance %s, amount %s", ErrInsufficientFunds, wallet.Balance, amount)
			}
			balance = wallet.Balance.Sub(amount)
		} else {
			balance = wallet.Balance.Add(amount)
		}

		if err := uow.UpdateWalletBalance(ctx, wallet.ID, balance); err != nil {
			return e.internal("update balance", err)
		}

		saved, err := uow.SaveTransaction(ctx, &model.Transaction{
			WalletID:     wallet.ID,
			CategoryID:   category.ID,
			Amount:       amount,
			Description:  description,
			Date:         date,
			CategoryName: category.Name,
			CategoryType: category.Type,
		})
		if err != nil {
			return e.internal("save transaction", err)
		}
		result.Transaction = saved

		if category.HasBudget() {
			// All-time spend, including the record just inserted. The
			// range-scoped variant lives in GetStats; the two differ on
			// purpose.
			spent, err := uow.SumExpensesByCategory(ctx, wallet.ID, category.ID)
			if err != nil {
				return e.internal("sum category spend", err)
			}
			remaining := category.BudgetLimit.Sub(spent)
			result.Budget = &model.BudgetStatus{
				Category:  category.Name,
				Remaining: remaining,
				Exceeded:  remaining.IsNegative(),
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("transaction recorded",
		"owner", owner,
		"category", categoryName,
		"amount", amount,
		"id", result.Transaction.ID)
	return &result, nil
}
