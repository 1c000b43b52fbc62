package ledger

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store"
)

// SetPlatformFee updates the platform fee percentage. Platform owner only.
func (e *Engine) SetPlatformFee(ctx context.Context, caller domain.Address, pct uint64) error {
	if pct > domain.MaxPlatformFeePct {
		return fmt.Errorf("%w: platform fee %d%% exceeds %d%%",
			domain.ErrInvalidInput, pct, domain.MaxPlatformFeePct)
	}

	return e.store.WithinTransaction(ctx, func(tx store.Store) error {
		if _, err := requirePlatformOwner(ctx, tx, caller); err != nil {
			return err
		}
		return tx.SetPlatformFeePct(ctx, pct)
	})
}

// WithdrawPlatformFees sweeps the entire treasury balance to the platform
// owner. Accumulated fees are the only thing ever credited to the treasury,
// so the sweep and "withdraw collected fees" coincide.
func (e *Engine) WithdrawPlatformFees(ctx context.Context, caller domain.Address) (uint64, error) {
	if !e.guard.enter() {
		return 0, domain.ErrReentrantCall
	}
	defer e.guard.exit()

	var withdrawn uint64
	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		owner, err := requirePlatformOwner(ctx, tx, caller)
		if err != nil {
			return err
		}

		treasury, err := tx.GetAccount(ctx, domain.TreasuryAddress)
		if err != nil {
			return fmt.Errorf("failed to get treasury account: %w", err)
		}
		if treasury == nil || treasury.Balance == 0 {
			return domain.ErrNothingToWithdraw
		}

		withdrawn = treasury.Balance
		return e.vault.Transfer(ctx, tx, domain.TreasuryAddress, owner, withdrawn)
	})
	if err != nil {
		return 0, err
	}

	e.publish(ctx, domain.NewEvent(domain.EventFeesWithdrawn, domain.PlatformEventData{
		Owner:  caller,
		Amount: withdrawn,
	}))
	return withdrawn, nil
}

// TransferPlatformOwnership hands the administrator role to a new identity.
func (e *Engine) TransferPlatformOwnership(ctx context.Context, caller, newOwner domain.Address) error {
	if newOwner.IsZero() || !newOwner.Valid() {
		return fmt.Errorf("%w: invalid new owner %q", domain.ErrInvalidInput, newOwner)
	}

	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		if _, err := requirePlatformOwner(ctx, tx, caller); err != nil {
			return err
		}
		return tx.SetPlatformOwner(ctx, newOwner)
	})
	if err != nil {
		return err
	}

	e.publish(ctx, domain.NewEvent(domain.EventOwnershipChanged, domain.PlatformEventData{
		Owner: newOwner,
	}))
	return nil
}
