package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a single owner's balance. Exactly one wallet exists per
// owner, created with a zero balance at registration time. The balance is
// an exact decimal and is only ever mutated inside a store unit of work.
type Wallet struct {
	CreatedAt time.Time
	Owner     string
	Balance   decimal.Decimal
	ID        int64
}
