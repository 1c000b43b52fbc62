// Package vault moves value between ledger accounts. Every payment leg in a
// settlement goes through here so that recipient transfer hooks are applied
// uniformly.
package vault

import (
	"context"
	"fmt"
	"sync"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store"
)

// TransferHook is invoked when an account receives funds. Returning an error
// rejects the transfer and aborts the surrounding transaction. Hooks model
// programmable recipients, so they may call back into the marketplace.
type TransferHook func(ctx context.Context, from, to domain.Address, amount uint64) error

// Vault performs balance movements against a Store. Hooks are process-local
// and keyed by the receiving address.
type Vault struct {
	mu    sync.RWMutex
	hooks map[domain.Address]TransferHook
}

func New() *Vault {
	return &Vault{
		hooks: make(map[domain.Address]TransferHook),
	}
}

// RegisterHook installs a transfer hook for the given recipient address,
// replacing any existing one.
func (v *Vault) RegisterHook(addr domain.Address, hook TransferHook) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.hooks[addr] = hook
}

// RemoveHook deletes the transfer hook for the given address.
func (v *Vault) RemoveHook(addr domain.Address) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.hooks, addr)
}

func (v *Vault) hookFor(addr domain.Address) TransferHook {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.hooks[addr]
}

// Deposit credits an external account with freshly funded value. The platform
// treasury only grows through settlement fees, so direct deposits to it are
// rejected.
func (v *Vault) Deposit(ctx context.Context, s store.Store, to domain.Address, amount uint64) error {
	if to.IsZero() || !to.Valid() {
		return fmt.Errorf("%w: invalid deposit address %q", domain.ErrInvalidInput, to)
	}
	if to == domain.TreasuryAddress {
		return fmt.Errorf("%w: the treasury does not accept direct deposits", domain.ErrTransferFailed)
	}
	if amount == 0 {
		return fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidInput)
	}

	if err := s.CreditAccount(ctx, to, amount); err != nil {
		return fmt.Errorf("failed to credit account %s: %w", to, err)
	}
	return nil
}

// Transfer debits from and credits to within the given store (usually a
// transaction), then fires the recipient's hook. A hook error surfaces as
// TransferFailed so the caller rolls everything back.
func (v *Vault) Transfer(ctx context.Context, s store.Store, from, to domain.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if err := s.DebitAccount(ctx, from, amount); err != nil {
		return fmt.Errorf("failed to debit account %s: %w", from, err)
	}
	return v.Credit(ctx, s, from, to, amount)
}

// Credit adds funds to an account and fires its transfer hook. Settlement
// uses this for payment legs whose source was already debited in aggregate
// when the buyer's attached value was taken.
func (v *Vault) Credit(ctx context.Context, s store.Store, from, to domain.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	if to.IsZero() {
		return fmt.Errorf("%w: transfer to the zero address", domain.ErrInvalidInput)
	}

	if err := s.CreditAccount(ctx, to, amount); err != nil {
		return fmt.Errorf("failed to credit account %s: %w", to, err)
	}

	if hook := v.hookFor(to); hook != nil {
		if err := hook(ctx, from, to, amount); err != nil {
			return fmt.Errorf("%w: recipient %s rejected %d: %v", domain.ErrTransferFailed, to, amount, err)
		}
	}
	return nil
}

// BalanceOf reports the current balance of an account. Unknown accounts read
// as zero.
func (v *Vault) BalanceOf(ctx context.Context, s store.Store, addr domain.Address) (uint64, error) {
	account, err := s.GetAccount(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("failed to get account %s: %w", addr, err)
	}
	if account == nil {
		return 0, nil
	}
	return account.Balance, nil
}
