package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// RunStoreTests runs the shared store test suite against an implementation.
// initDB must return a store with clean state for each subtest.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	t.Run("Artists", func(t *testing.T) { testArtists(t, initDB(t)) })
	t.Run("Artworks", func(t *testing.T) { testArtworks(t, initDB(t)) })
	t.Run("OwnershipAndCollections", func(t *testing.T) { testOwnershipAndCollections(t, initDB(t)) })
	t.Run("Sales", func(t *testing.T) { testSales(t, initDB(t)) })
	t.Run("Accounts", func(t *testing.T) { testAccounts(t, initDB(t)) })
	t.Run("Counters", func(t *testing.T) { testCounters(t, initDB(t)) })
	t.Run("PlatformState", func(t *testing.T) { testPlatformState(t, initDB(t)) })
	t.Run("TransactionRollback", func(t *testing.T) { testTransactionRollback(t, initDB(t)) })
}

func testAddr(n int) domain.Address {
	return domain.NormalizeAddress(fmt.Sprintf("0x%040x", n))
}

func buildTestArtist(n int) *schema.Artist {
	return &schema.Artist{
		Address:          testAddr(n),
		ProfileReference: fmt.Sprintf("ipfs://profile-%d", n),
		RegisteredAt:     time.Now().UTC(),
	}
}

func buildTestArtwork(tokenID uint64, artist domain.Address) *schema.Artwork {
	return &schema.Artwork{
		TokenID:      tokenID,
		Artist:       artist,
		CurrentOwner: artist,
		Title:        fmt.Sprintf("Piece #%d", tokenID),
		Description:  "a study in blue",
		ContentHash:  fmt.Sprintf("Qm%058d", tokenID),
		Price:        100,
		RoyaltyPct:   10,
		IsListed:     true,
		CreatedAt:    time.Now().UTC(),
	}
}

func testArtists(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("get absent artist returns nil", func(t *testing.T) {
		artist, err := s.GetArtist(ctx, testAddr(1))
		require.NoError(t, err)
		assert.Nil(t, artist)
	})

	t.Run("create and read back", func(t *testing.T) {
		in := buildTestArtist(1)
		require.NoError(t, s.CreateArtist(ctx, in))

		artist, err := s.GetArtist(ctx, in.Address)
		require.NoError(t, err)
		require.NotNil(t, artist)
		assert.Equal(t, in.ProfileReference, artist.ProfileReference)
		assert.False(t, artist.Verified)
		assert.Zero(t, artist.Reputation)
	})

	t.Run("save mutations persist", func(t *testing.T) {
		artist, err := s.GetArtist(ctx, testAddr(1))
		require.NoError(t, err)
		require.NotNil(t, artist)

		artist.Verified = true
		artist.Reputation = 10
		artist.TotalEarnings = 98
		require.NoError(t, s.SaveArtist(ctx, artist))

		reread, err := s.GetArtist(ctx, artist.Address)
		require.NoError(t, err)
		assert.True(t, reread.Verified)
		assert.Equal(t, uint64(10), reread.Reputation)
		assert.Equal(t, uint64(98), reread.TotalEarnings)
	})

	t.Run("count", func(t *testing.T) {
		require.NoError(t, s.CreateArtist(ctx, buildTestArtist(2)))
		count, err := s.CountArtists(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)
	})
}

func testArtworks(t *testing.T, s Store) {
	ctx := context.Background()
	artist := testAddr(1)

	t.Run("get absent artwork returns nil", func(t *testing.T) {
		artwork, err := s.GetArtwork(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, artwork)
	})

	t.Run("create and read back", func(t *testing.T) {
		require.NoError(t, s.CreateArtwork(ctx, buildTestArtwork(1, artist)))

		artwork, err := s.GetArtwork(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, artwork)
		assert.Equal(t, artist, artwork.Artist)
		assert.Equal(t, artist, artwork.CurrentOwner)
		assert.True(t, artwork.IsListed)
		assert.Zero(t, artwork.SalesCount)
	})

	t.Run("save mutations persist", func(t *testing.T) {
		artwork, err := s.GetArtworkForUpdate(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, artwork)

		artwork.CurrentOwner = testAddr(2)
		artwork.IsListed = false
		artwork.SalesCount = 1
		require.NoError(t, s.SaveArtwork(ctx, artwork))

		reread, err := s.GetArtwork(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, testAddr(2), reread.CurrentOwner)
		assert.False(t, reread.IsListed)
		assert.Equal(t, uint64(1), reread.SalesCount)
	})

	t.Run("artworks by artist are ordered by token id", func(t *testing.T) {
		require.NoError(t, s.CreateArtwork(ctx, buildTestArtwork(2, testAddr(9))))
		require.NoError(t, s.CreateArtwork(ctx, buildTestArtwork(3, artist)))

		artworks, err := s.GetArtworksByArtist(ctx, artist)
		require.NoError(t, err)
		require.Len(t, artworks, 2)
		assert.Equal(t, uint64(1), artworks[0].TokenID)
		assert.Equal(t, uint64(3), artworks[1].TokenID)

		count, err := s.CountArtworks(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), count)
	})
}

func testOwnershipAndCollections(t *testing.T, s Store) {
	ctx := context.Background()
	alice, bob := testAddr(1), testAddr(2)
	require.NoError(t, s.CreateArtwork(ctx, buildTestArtwork(1, alice)))

	now := time.Now().UTC()
	appendOwner := func(owner domain.Address) {
		require.NoError(t, s.AppendOwnershipRecord(ctx, &schema.OwnershipRecord{
			TokenID: 1, Owner: owner, AcquiredAt: now,
		}))
		require.NoError(t, s.AppendCollectionEntry(ctx, &schema.CollectionEntry{
			Collector: owner, TokenID: 1, AcquiredAt: now,
		}))
	}

	// alice mints, sells to bob, re-acquires
	appendOwner(alice)
	appendOwner(bob)
	appendOwner(alice)

	t.Run("ownership history is chronological", func(t *testing.T) {
		history, err := s.GetOwnershipHistory(ctx, 1)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, alice, history[0].Owner)
		assert.Equal(t, bob, history[1].Owner)
		assert.Equal(t, alice, history[2].Owner)
	})

	t.Run("collection keeps duplicate acquisitions", func(t *testing.T) {
		collection, err := s.GetCollection(ctx, alice)
		require.NoError(t, err)
		require.Len(t, collection, 2)
		assert.Equal(t, uint64(1), collection[0].TokenID)
		assert.Equal(t, uint64(1), collection[1].TokenID)
	})

	t.Run("empty history for unknown token", func(t *testing.T) {
		history, err := s.GetOwnershipHistory(ctx, 99)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func testSales(t *testing.T, s Store) {
	ctx := context.Background()
	alice, bob := testAddr(1), testAddr(2)
	require.NoError(t, s.CreateArtwork(ctx, buildTestArtwork(1, alice)))

	sale := &schema.Sale{
		SaleID:       1,
		TokenID:      1,
		Seller:       alice,
		Buyer:        bob,
		Price:        100,
		PlatformFee:  2,
		SellerAmount: 98,
		Timestamp:    time.Now().UTC(),
	}
	require.NoError(t, s.CreateSale(ctx, sale))

	t.Run("read back", func(t *testing.T) {
		got, err := s.GetSale(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, alice, got.Seller)
		assert.Equal(t, bob, got.Buyer)
		assert.Equal(t, uint64(100), got.Price)
		assert.False(t, got.IsSecondarySale)
	})

	t.Run("absent sale returns nil", func(t *testing.T) {
		got, err := s.GetSale(ctx, 7)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("sales by token in order", func(t *testing.T) {
		second := *sale
		second.SaleID = 2
		second.Seller = bob
		second.Buyer = alice
		second.IsSecondarySale = true
		require.NoError(t, s.CreateSale(ctx, &second))

		sales, err := s.GetSalesByToken(ctx, 1)
		require.NoError(t, err)
		require.Len(t, sales, 2)
		assert.Equal(t, uint64(1), sales[0].SaleID)
		assert.Equal(t, uint64(2), sales[1].SaleID)

		count, err := s.CountSales(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), count)
	})
}

func testAccounts(t *testing.T, s Store) {
	ctx := context.Background()
	addr := testAddr(1)

	t.Run("absent account reads as nil", func(t *testing.T) {
		account, err := s.GetAccount(ctx, addr)
		require.NoError(t, err)
		assert.Nil(t, account)
	})

	t.Run("credit creates and accumulates", func(t *testing.T) {
		require.NoError(t, s.CreditAccount(ctx, addr, 100))
		require.NoError(t, s.CreditAccount(ctx, addr, 50))

		account, err := s.GetAccount(ctx, addr)
		require.NoError(t, err)
		require.NotNil(t, account)
		assert.Equal(t, uint64(150), account.Balance)
	})

	t.Run("debit subtracts", func(t *testing.T) {
		require.NoError(t, s.DebitAccount(ctx, addr, 60))

		account, err := s.GetAccount(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, uint64(90), account.Balance)
	})

	t.Run("overdraft is rejected", func(t *testing.T) {
		err := s.DebitAccount(ctx, addr, 91)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

		account, err := s.GetAccount(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, uint64(90), account.Balance)
	})

	t.Run("debit of absent account is rejected", func(t *testing.T) {
		err := s.DebitAccount(ctx, testAddr(9), 1)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	})
}

func testCounters(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("token ids start at 1 and are sequential", func(t *testing.T) {
		for want := uint64(1); want <= 3; want++ {
			var got uint64
			err := s.WithinTransaction(ctx, func(tx Store) error {
				var err error
				got, err = tx.NextTokenID(ctx)
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("sale ids are independent of token ids", func(t *testing.T) {
		var got uint64
		err := s.WithinTransaction(ctx, func(tx Store) error {
			var err error
			got, err = tx.NextSaleID(ctx)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), got)
	})

	t.Run("rolled back allocation does not burn an id", func(t *testing.T) {
		boom := errors.New("boom")
		err := s.WithinTransaction(ctx, func(tx Store) error {
			if _, err := tx.NextTokenID(ctx); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		var got uint64
		err = s.WithinTransaction(ctx, func(tx Store) error {
			var err error
			got, err = tx.NextTokenID(ctx)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), got, "the failed allocation must leave no gap")
	})
}

func testPlatformState(t *testing.T, s Store) {
	ctx := context.Background()
	owner := testAddr(1)

	require.NoError(t, s.EnsurePlatformState(ctx, owner, 2))

	t.Run("seeded values", func(t *testing.T) {
		gotOwner, err := s.GetPlatformOwner(ctx)
		require.NoError(t, err)
		assert.Equal(t, owner, gotOwner)

		pct, err := s.GetPlatformFeePct(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), pct)

		volume, err := s.GetTradingVolume(ctx)
		require.NoError(t, err)
		assert.Zero(t, volume)
	})

	t.Run("ensure is idempotent", func(t *testing.T) {
		require.NoError(t, s.SetPlatformFeePct(ctx, 5))
		require.NoError(t, s.EnsurePlatformState(ctx, testAddr(8), 2))

		pct, err := s.GetPlatformFeePct(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), pct, "ensure must not overwrite existing state")

		gotOwner, err := s.GetPlatformOwner(ctx)
		require.NoError(t, err)
		assert.Equal(t, owner, gotOwner)
	})

	t.Run("owner transfer", func(t *testing.T) {
		require.NoError(t, s.SetPlatformOwner(ctx, testAddr(3)))
		gotOwner, err := s.GetPlatformOwner(ctx)
		require.NoError(t, err)
		assert.Equal(t, testAddr(3), gotOwner)
	})

	t.Run("trading volume accumulates", func(t *testing.T) {
		require.NoError(t, s.AddTradingVolume(ctx, 100))
		require.NoError(t, s.AddTradingVolume(ctx, 200))

		volume, err := s.GetTradingVolume(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(300), volume)
	})
}

func testTransactionRollback(t *testing.T, s Store) {
	ctx := context.Background()
	alice, bob := testAddr(1), testAddr(2)
	boom := errors.New("boom")

	require.NoError(t, s.CreditAccount(ctx, alice, 100))

	err := s.WithinTransaction(ctx, func(tx Store) error {
		if err := tx.DebitAccount(ctx, alice, 40); err != nil {
			return err
		}
		if err := tx.CreditAccount(ctx, bob, 40); err != nil {
			return err
		}
		if err := tx.CreateArtist(ctx, buildTestArtist(1)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	// Nothing from the failed transaction may be observable
	account, err := s.GetAccount(ctx, alice)
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, uint64(100), account.Balance)

	bobAccount, err := s.GetAccount(ctx, bob)
	require.NoError(t, err)
	if bobAccount != nil {
		assert.Zero(t, bobAccount.Balance)
	}

	artist, err := s.GetArtist(ctx, alice)
	require.NoError(t, err)
	assert.Nil(t, artist)

	// A successful transaction commits everything
	err = s.WithinTransaction(ctx, func(tx Store) error {
		if err := tx.DebitAccount(ctx, alice, 40); err != nil {
			return err
		}
		return tx.CreditAccount(ctx, bob, 40)
	})
	require.NoError(t, err)

	account, err = s.GetAccount(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(60), account.Balance)
	bobAccount, err = s.GetAccount(ctx, bob)
	require.NoError(t, err)
	require.NotNil(t, bobAccount)
	assert.Equal(t, uint64(40), bobAccount.Balance)
}
