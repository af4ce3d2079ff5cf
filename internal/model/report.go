package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus is the live projection returned alongside a newly recorded
// expense in a budgeted category. It compares the category's all-time spend
// against its limit; it is derived, never persisted.
type BudgetStatus struct {
	Category  string
	Remaining decimal.Decimal
	Exceeded  bool
}

// TransactionResult is the outcome of recording a single transaction.
// Budget is nil for income transactions and for categories without a limit.
type TransactionResult struct {
	Transaction *Transaction
	Budget      *BudgetStatus
}

// StatsReport aggregates a wallet's history over an inclusive date range.
// ExpensesByCategory only contains categories with at least one matching
// expense; BudgetStatus covers every budgeted expense category the owner
// has, with spend scoped to the range (unlike the all-time BudgetStatus
// above; the two are intentionally different).
type StatsReport struct {
	ExpensesByCategory map[string]decimal.Decimal
	BudgetStatus       map[string]decimal.Decimal
	TotalIncome        decimal.Decimal
	TotalExpense       decimal.Decimal
}

// ExportedTransaction is the owner-facing record shape produced by export.
// It carries no wallet or ownership linkage.
type ExportedTransaction struct {
	Date        time.Time       `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ID          int64           `json:"id"`
}
