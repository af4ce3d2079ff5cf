// Package ledger implements the core ledger engine: category lifecycle,
// balance-mutating transactions, atomic peer-to-peer transfers, and
// date-ranged aggregation. All persistence goes through the service.Storage
// contract; every balance mutation runs inside a single unit of work.
package ledger

import (
	"context"
	"fmt"

	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/service"
)

// Engine is the ledger engine. It is safe for concurrent use; conflicting
// operations serialize at the store's unit-of-work boundary.
type Engine struct {
	store service.Storage
}

// New creates a ledger engine backed by the given store.
func New(store service.Storage) *Engine {
	return &Engine{store: store}
}

// withUnitOfWork runs fn inside a store unit of work, committing on success
// and rolling back on any error. Errors returned by fn pass through
// untouched so callers can branch on the ledger taxonomy.
func (e *Engine) withUnitOfWork(ctx context.Context, fn func(uow service.UnitOfWork) error) error {
	uow, err := e.store.BeginTx(ctx)
	if err != nil {
		return e.internal("begin unit of work", err)
	}
	defer func() { _ = uow.Rollback() }()

	if err := fn(uow); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return e.internal("commit unit of work", err)
	}
	return nil
}

// internal logs the underlying store failure and returns an opaque
// ErrInternal carrying only the operation name, never store detail.
func (e *Engine) internal(op string, err error) error {
	common.LogError(err, "store operation failed", common.Fields{"op": op})
	return fmt.Errorf("%s: %w", op, ErrInternal)
}
