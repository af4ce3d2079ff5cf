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

// Transfer atomically moves funds between two owners' wallets: the sender is
// debited, the receiver credited, and one record lands under each side's
// reserved transfer category (expense for the sender, income for the
// receiver). The whole operation is a single unit of work; no intermediate
// state is ever visible.
func (e *Engine) Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) error {
	if sender == receiver {
		return fmt.Errorf("%w: cannot transfer to self", ErrInvalidArgument)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidArgument)
	}

	err := e.withUnitOfWork(ctx, func(uow service.UnitOfWork) error {
		senderWallet, err := uow.GetWallet(ctx, sender)
		if err != nil {
			return e.internal("get sender wallet", err)
		}
		if senderWallet == nil {
			return fmt.Errorf("%w: owner %q", ErrNotFound, sender)
		}

		receiverWallet, err := uow.GetWallet(ctx, receiver)
		if err != nil {
			return e.internal("get receiver wallet", err)
		}
		if receiverWallet == nil {
			return fmt.Errorf("%w: receiver %q", ErrNotFound, receiver)
		}

		if senderWallet.Balance.LessThan(amount) {
			return fmt.Errorf("%w: balance %s, amount %s", ErrInsufficientFunds, senderWallet.Balance, amount)
		}

		senderCategory, err := e.getOrCreateTransferCategory(ctx, uow, sender, model.CategoryTypeExpense)
		if err != nil {
			return err
		}
		receiverCategory, err := e.getOrCreateTransferCategory(ctx, uow, receiver, model.CategoryTypeIncome)
		if err != nil {
			return err
		}

		// Wallet rows are touched in ascending ID order so two transfers
		// running in opposite directions cannot deadlock on row locks.
		updates := []struct {
			wallet  *model.Wallet
			balance decimal.Decimal
		}{
			{senderWallet, senderWallet.Balance.Sub(amount)},
			{receiverWallet, receiverWallet.Balance.Add(amount)},
		}
		if updates[0].wallet.ID > updates[1].wallet.ID {
			updates[0], updates[1] = updates[1], updates[0]
		}
		for _, u := range updates {
			if err := uow.UpdateWalletBalance(ctx, u.wallet.ID, u.balance); err != nil {
				return e.internal("update balance", err)
			}
		}

		now := time.Now().UTC()
		if _, err := uow.SaveTransaction(ctx, &model.Transaction{
			WalletID:    senderWallet.ID,
			CategoryID:  senderCategory.ID,
			Amount:      amount,
			Description: "Transfer to " + receiver,
			Date:        now,
		}); err != nil {
			return e.internal("save sender record", err)
		}
		if _, err := uow.SaveTransaction(ctx, &model.Transaction{
			WalletID:    receiverWallet.ID,
			CategoryID:  receiverCategory.ID,
			Amount:      amount,
			Description: "Transfer from " + sender,
			Date:        now,
		}); err != nil {
			return e.internal("save receiver record", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("transfer completed", "sender", sender, "receiver", receiver, "amount", amount)
	return nil
}
