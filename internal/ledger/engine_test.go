package ledger

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/messaging"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/vault"
)

var (
	admin = domain.NormalizeAddress("0x00000000000000000000000000000000000000Ad")
	alice = domain.NormalizeAddress("0x0000000000000000000000000000000000000001")
	bob   = domain.NormalizeAddress("0x0000000000000000000000000000000000000002")
	carol = domain.NormalizeAddress("0x0000000000000000000000000000000000000003")
)

const (
	testMinPrice        = 1
	testVerificationFee = 100
	testFeePct          = 2
)

func newTestEngine(t *testing.T) *Engine {
	e := NewEngine(store.NewMemoryStore(), vault.New(), messaging.NoopPublisher{}, Params{
		AdminAddress:    admin,
		MinListingPrice: testMinPrice,
		VerificationFee: testVerificationFee,
		DefaultFeePct:   testFeePct,
	})
	require.NoError(t, e.Bootstrap(context.Background()))
	return e
}

// registerArtist registers addr with a generated profile reference.
func registerArtist(t *testing.T, e *Engine, addr domain.Address) {
	t.Helper()
	_, err := e.RegisterArtist(context.Background(), addr, fmt.Sprintf("ipfs://profile-%s", addr))
	require.NoError(t, err)
}

// fund deposits base units into addr's vault account.
func fund(t *testing.T, e *Engine, addr domain.Address, amount uint64) {
	t.Helper()
	require.NoError(t, e.Deposit(context.Background(), addr, amount))
}

// balance reads addr's vault balance.
func balance(t *testing.T, e *Engine, addr domain.Address) uint64 {
	t.Helper()
	got, err := e.Balance(context.Background(), addr)
	require.NoError(t, err)
	return got
}

// mintArtwork registers (if needed) and mints a listed artwork, returning
// its token ID.
func mintArtwork(t *testing.T, e *Engine, artist domain.Address, price, royaltyPct uint64) uint64 {
	t.Helper()
	ctx := context.Background()
	if _, err := e.GetArtist(ctx, artist); err != nil {
		registerArtist(t, e, artist)
	}
	artwork, err := e.MintArtwork(ctx, artist, MintParams{
		Title:       "untitled",
		Description: "test piece",
		ContentHash: "QmTestContentHash",
		Price:       price,
		RoyaltyPct:  royaltyPct,
	})
	require.NoError(t, err)
	return artwork.TokenID
}
