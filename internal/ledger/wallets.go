package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/finchley/coppermint/internal/common"
	"github.com/finchley/coppermint/internal/model"
)

// RegisterWallet creates a zero-balance wallet for a new owner. Registration
// normally happens once, at account creation time, by the identity
// collaborator sitting in front of the engine.
func (e *Engine) RegisterWallet(ctx context.Context, owner string) (*model.Wallet, error) {
	wallet, err := e.store.CreateWallet(ctx, owner)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			return nil, fmt.Errorf("%w: owner %q", ErrAlreadyExists, owner)
		}
		return nil, e.internal("create wallet", err)
	}
	return wallet, nil
}

// GetBalance returns an owner's wallet with its current balance.
func (e *Engine) GetBalance(ctx context.Context, owner string) (*model.Wallet, error) {
	wallet, err := e.store.GetWallet(ctx, owner)
	if err != nil {
		return nil, e.internal("get wallet", err)
	}
	if wallet == nil {
		return nil, fmt.Errorf("%w: owner %q", ErrNotFound, owner)
	}
	return wallet, nil
}
