package ledger

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// PlatformStats aggregates the marketplace-wide counters.
type PlatformStats struct {
	Artists       uint64         `json:"artists"`
	Artworks      uint64         `json:"artworks"`
	Sales         uint64         `json:"sales"`
	TradingVolume uint64         `json:"trading_volume"`
	FeePct        uint64         `json:"fee_pct"`
	Owner         domain.Address `json:"owner"`
	PendingFees   uint64         `json:"pending_fees"`
}

// GetArtwork returns an artwork by token ID, or NotFound.
func (e *Engine) GetArtwork(ctx context.Context, tokenID uint64) (*schema.Artwork, error) {
	return requireArtwork(ctx, e.store, tokenID, false)
}

// GetArtist returns an artist's stats, or NotFound if the identity never
// registered.
func (e *Engine) GetArtist(ctx context.Context, address domain.Address) (*schema.Artist, error) {
	artist, err := e.store.GetArtist(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get artist %s: %w", address, err)
	}
	if artist == nil {
		return nil, fmt.Errorf("%w: artist %s", domain.ErrNotFound, address)
	}
	return artist, nil
}

// GetCreations lists the artworks created by an artist, oldest first.
func (e *Engine) GetCreations(ctx context.Context, address domain.Address) ([]schema.Artwork, error) {
	if _, err := e.GetArtist(ctx, address); err != nil {
		return nil, err
	}
	return e.store.GetArtworksByArtist(ctx, address)
}

// GetCollection lists an identity's acquisitions in order, duplicates kept
// across re-acquisition. Unknown identities have an empty collection.
func (e *Engine) GetCollection(ctx context.Context, address domain.Address) ([]schema.CollectionEntry, error) {
	return e.store.GetCollection(ctx, address)
}

// GetOwnershipHistory returns the chronological owner log of a token,
// starting with the minting artist.
func (e *Engine) GetOwnershipHistory(ctx context.Context, tokenID uint64) ([]schema.OwnershipRecord, error) {
	if _, err := e.GetArtwork(ctx, tokenID); err != nil {
		return nil, err
	}
	return e.store.GetOwnershipHistory(ctx, tokenID)
}

// GetSale returns a settled sale record, or NotFound.
func (e *Engine) GetSale(ctx context.Context, saleID uint64) (*schema.Sale, error) {
	sale, err := e.store.GetSale(ctx, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sale %d: %w", saleID, err)
	}
	if sale == nil {
		return nil, fmt.Errorf("%w: sale %d", domain.ErrNotFound, saleID)
	}
	return sale, nil
}

// GetSalesByToken returns a token's sale history in order.
func (e *Engine) GetSalesByToken(ctx context.Context, tokenID uint64) ([]schema.Sale, error) {
	if _, err := e.GetArtwork(ctx, tokenID); err != nil {
		return nil, err
	}
	return e.store.GetSalesByToken(ctx, tokenID)
}

// CurrentOwner returns the current owner of a token.
func (e *Engine) CurrentOwner(ctx context.Context, tokenID uint64) (domain.Address, error) {
	artwork, err := e.GetArtwork(ctx, tokenID)
	if err != nil {
		return domain.ZeroAddress, err
	}
	return artwork.CurrentOwner, nil
}

// IsListed reports whether a token is currently up for sale.
func (e *Engine) IsListed(ctx context.Context, tokenID uint64) (bool, error) {
	artwork, err := e.GetArtwork(ctx, tokenID)
	if err != nil {
		return false, err
	}
	return artwork.IsListed, nil
}

// GetPlatformStats returns the marketplace-wide aggregates.
func (e *Engine) GetPlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	var err error
	if stats.Artists, err = e.store.CountArtists(ctx); err != nil {
		return nil, err
	}
	if stats.Artworks, err = e.store.CountArtworks(ctx); err != nil {
		return nil, err
	}
	if stats.Sales, err = e.store.CountSales(ctx); err != nil {
		return nil, err
	}
	if stats.TradingVolume, err = e.store.GetTradingVolume(ctx); err != nil {
		return nil, err
	}
	if stats.FeePct, err = e.store.GetPlatformFeePct(ctx); err != nil {
		return nil, err
	}
	if stats.Owner, err = e.store.GetPlatformOwner(ctx); err != nil {
		return nil, err
	}
	if stats.PendingFees, err = e.vault.BalanceOf(ctx, e.store, domain.TreasuryAddress); err != nil {
		return nil, err
	}
	return stats, nil
}

// Balance returns an account's vault balance. Unknown accounts read as zero.
func (e *Engine) Balance(ctx context.Context, address domain.Address) (uint64, error) {
	return e.vault.BalanceOf(ctx, e.store, address)
}

// Deposit funds an external account so it can buy artworks.
func (e *Engine) Deposit(ctx context.Context, address domain.Address, amount uint64) error {
	return e.vault.Deposit(ctx, e.store, address, amount)
}
