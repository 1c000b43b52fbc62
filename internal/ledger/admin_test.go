package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

func TestSetPlatformFee(t *testing.T) {
	ctx := context.Background()

	t.Run("owner adjusts the fee", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.SetPlatformFee(ctx, admin, 5))

		stats, err := e.GetPlatformStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), stats.FeePct)

		// A later sale uses the new percentage.
		tokenID := mintArtwork(t, e, alice, 100, 10)
		fund(t, e, bob, 100)
		sale, err := e.Purchase(ctx, bob, tokenID, 100)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), sale.PlatformFee)
		assert.Equal(t, uint64(95), sale.SellerAmount)
	})

	t.Run("fee ceiling", func(t *testing.T) {
		e := newTestEngine(t)
		err := e.SetPlatformFee(ctx, admin, domain.MaxPlatformFeePct+1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("owner only", func(t *testing.T) {
		e := newTestEngine(t)
		err := e.SetPlatformFee(ctx, alice, 5)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestWithdrawPlatformFees(t *testing.T) {
	ctx := context.Background()

	t.Run("sweeps the whole treasury", func(t *testing.T) {
		e := newTestEngine(t)
		tokenID := mintArtwork(t, e, alice, 100, 10)
		fund(t, e, bob, 100)
		_, err := e.Purchase(ctx, bob, tokenID, 100)
		require.NoError(t, err)

		withdrawn, err := e.WithdrawPlatformFees(ctx, admin)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), withdrawn)
		assert.Equal(t, uint64(2), balance(t, e, admin))
		assert.Zero(t, balance(t, e, domain.TreasuryAddress))
	})

	t.Run("nothing to withdraw", func(t *testing.T) {
		e := newTestEngine(t)
		_, err := e.WithdrawPlatformFees(ctx, admin)
		assert.ErrorIs(t, err, domain.ErrNothingToWithdraw)
	})

	t.Run("owner only", func(t *testing.T) {
		e := newTestEngine(t)
		_, err := e.WithdrawPlatformFees(ctx, alice)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestTransferPlatformOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("new owner takes over admin rights", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.TransferPlatformOwnership(ctx, admin, carol))

		assert.ErrorIs(t, e.SetPlatformFee(ctx, admin, 3), domain.ErrUnauthorized)
		require.NoError(t, e.SetPlatformFee(ctx, carol, 3))
	})

	t.Run("rejects the zero address", func(t *testing.T) {
		e := newTestEngine(t)
		err := e.TransferPlatformOwnership(ctx, admin, domain.ZeroAddress)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("owner only", func(t *testing.T) {
		e := newTestEngine(t)
		err := e.TransferPlatformOwnership(ctx, alice, bob)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestDirectTreasuryDepositRejected(t *testing.T) {
	e := newTestEngine(t)
	err := e.Deposit(context.Background(), domain.TreasuryAddress, 100)
	assert.ErrorIs(t, err, domain.ErrTransferFailed)
}
