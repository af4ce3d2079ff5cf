package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchley/coppermint/internal/model"
	"github.com/finchley/coppermint/internal/service"
)

// GetStats aggregates an owner's history over an inclusive date range. A nil
// bound leaves that side unbounded. Budget status here is range-scoped:
// every budgeted expense category appears with limit minus in-range spend,
// zero spend included. That is deliberately different from the all-time
// budget warning AddTransaction returns.
func (e *Engine) GetStats(ctx context.Context, owner string, from, to *time.Time) (*model.StatsReport, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, fmt.Errorf("%w: range start after end", ErrInvalidArgument)
	}

	wallet, err := e.store.GetWallet(ctx, owner)
	if err != nil {
		return nil, e.internal("get wallet", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("%w: owner %q", ErrNotFound, owner)
	}

	transactions, err := e.store.GetTransactions(ctx, wallet.ID, service.TransactionFilter{From: from, To: to})
	if err != nil {
		return nil, e.internal("get transactions", err)
	}

	report := &model.StatsReport{
		TotalIncome:        decimal.Zero,
		TotalExpense:       decimal.Zero,
		ExpensesByCategory: make(map[string]decimal.Decimal),
		BudgetStatus:       make(map[string]decimal.Decimal),
	}

	for _, t := range transactions {
		if t.CategoryType == model.CategoryTypeIncome {
			report.TotalIncome = report.TotalIncome.Add(t.Amount)
			continue
		}
		report.TotalExpense = report.TotalExpense.Add(t.Amount)
		report.ExpensesByCategory[t.CategoryName] = report.ExpensesByCategory[t.CategoryName].Add(t.Amount)
	}

	categories, err := e.store.GetCategories(ctx, owner)
	if err != nil {
		return nil, e.internal("get categories", err)
	}
	for _, c := range categories {
		if !c.HasBudget() {
			continue
		}
		spent := report.ExpensesByCategory[c.Name]
		report.BudgetStatus[c.Name] = c.BudgetLimit.Sub(spent)
	}

	return report, nil
}
