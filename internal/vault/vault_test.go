package vault

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store"
)

var (
	alice = domain.NormalizeAddress("0x0000000000000000000000000000000000000001")
	bob   = domain.NormalizeAddress("0x0000000000000000000000000000000000000002")
)

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	v := New()

	t.Run("credits the account", func(t *testing.T) {
		require.NoError(t, v.Deposit(ctx, s, alice, 100))
		balance, err := v.BalanceOf(ctx, s, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), balance)
	})

	t.Run("rejects the treasury", func(t *testing.T) {
		err := v.Deposit(ctx, s, domain.TreasuryAddress, 100)
		assert.ErrorIs(t, err, domain.ErrTransferFailed)
	})

	t.Run("rejects zero amounts and bad addresses", func(t *testing.T) {
		assert.ErrorIs(t, v.Deposit(ctx, s, alice, 0), domain.ErrInvalidInput)
		assert.ErrorIs(t, v.Deposit(ctx, s, domain.ZeroAddress, 1), domain.ErrInvalidInput)
		assert.ErrorIs(t, v.Deposit(ctx, s, "not-an-address", 1), domain.ErrInvalidInput)
	})
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()

	t.Run("moves funds", func(t *testing.T) {
		s := store.NewMemoryStore()
		v := New()
		require.NoError(t, v.Deposit(ctx, s, alice, 100))

		require.NoError(t, v.Transfer(ctx, s, alice, bob, 40))

		aliceBalance, err := v.BalanceOf(ctx, s, alice)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), aliceBalance)
		bobBalance, err := v.BalanceOf(ctx, s, bob)
		require.NoError(t, err)
		assert.Equal(t, uint64(40), bobBalance)
	})

	t.Run("zero amount is a no-op", func(t *testing.T) {
		s := store.NewMemoryStore()
		v := New()
		require.NoError(t, v.Transfer(ctx, s, alice, bob, 0))
		balance, err := v.BalanceOf(ctx, s, bob)
		require.NoError(t, err)
		assert.Zero(t, balance)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		s := store.NewMemoryStore()
		v := New()
		require.NoError(t, v.Deposit(ctx, s, alice, 10))
		err := v.Transfer(ctx, s, alice, bob, 11)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("recipient hook sees the transfer", func(t *testing.T) {
		s := store.NewMemoryStore()
		v := New()
		require.NoError(t, v.Deposit(ctx, s, alice, 100))

		var gotFrom, gotTo domain.Address
		var gotAmount uint64
		v.RegisterHook(bob, func(ctx context.Context, from, to domain.Address, amount uint64) error {
			gotFrom, gotTo, gotAmount = from, to, amount
			return nil
		})

		require.NoError(t, v.Transfer(ctx, s, alice, bob, 25))
		assert.Equal(t, alice, gotFrom)
		assert.Equal(t, bob, gotTo)
		assert.Equal(t, uint64(25), gotAmount)
	})

	t.Run("hook rejection becomes TransferFailed", func(t *testing.T) {
		s := store.NewMemoryStore()
		v := New()
		require.NoError(t, v.Deposit(ctx, s, alice, 100))
		v.RegisterHook(bob, func(ctx context.Context, from, to domain.Address, amount uint64) error {
			return errors.New("no thanks")
		})

		err := v.Transfer(ctx, s, alice, bob, 25)
		assert.ErrorIs(t, err, domain.ErrTransferFailed)
	})

	t.Run("removed hook no longer fires", func(t *testing.T) {
		s := store.NewMemoryStore()
		v := New()
		require.NoError(t, v.Deposit(ctx, s, alice, 100))
		v.RegisterHook(bob, func(ctx context.Context, from, to domain.Address, amount uint64) error {
			return errors.New("no thanks")
		})
		v.RemoveHook(bob)

		require.NoError(t, v.Transfer(ctx, s, alice, bob, 25))
	})
}
