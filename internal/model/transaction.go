package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable movement against a wallet. Amount is a
// positive magnitude; the signed effect on the balance comes from the
// category's type and is never stored redundantly.
type Transaction struct {
	Date         time.Time
	CreatedAt    time.Time
	Description  string
	Amount       decimal.Decimal
	ID           int64
	WalletID     int64
	CategoryID   int64

	// CategoryName and CategoryType are populated on reads that join the
	// category row; they are not part of the stored record.
	CategoryName string
	CategoryType CategoryType
}

// Signed returns the transaction's signed effect on the wallet balance.
func (t *Transaction) Signed() decimal.Decimal {
	if t.CategoryType == CategoryTypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
