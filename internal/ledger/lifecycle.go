package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// MintParams carries the caller-supplied fields for a new artwork.
type MintParams struct {
	Title       string
	Description string
	ContentHash string
	Price       uint64
	RoyaltyPct  uint64
}

// MintArtwork creates an artwork for a registered artist. The new token is
// listed immediately at the given price and the artist becomes its first
// owner.
func (e *Engine) MintArtwork(ctx context.Context, caller domain.Address, params MintParams) (*schema.Artwork, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrInvalidInput)
	}
	if params.ContentHash == "" {
		return nil, fmt.Errorf("%w: content hash must not be empty", domain.ErrInvalidInput)
	}
	if params.Price < e.params.MinListingPrice {
		return nil, fmt.Errorf("%w: price %d is below the minimum %d",
			domain.ErrPriceTooLow, params.Price, e.params.MinListingPrice)
	}
	if params.RoyaltyPct > domain.MaxRoyaltyPct {
		return nil, fmt.Errorf("%w: royalty %d%% exceeds %d%%",
			domain.ErrRoyaltyTooHigh, params.RoyaltyPct, domain.MaxRoyaltyPct)
	}

	var artwork *schema.Artwork
	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		artist, err := tx.GetArtistForUpdate(ctx, caller)
		if err != nil {
			return fmt.Errorf("failed to get artist %s: %w", caller, err)
		}
		if artist == nil {
			return fmt.Errorf("%w: artist %s", domain.ErrNotRegistered, caller)
		}

		tokenID, err := tx.NextTokenID(ctx)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		artwork = &schema.Artwork{
			TokenID:      tokenID,
			Artist:       caller,
			CurrentOwner: caller,
			Title:        params.Title,
			Description:  params.Description,
			ContentHash:  params.ContentHash,
			Price:        params.Price,
			RoyaltyPct:   params.RoyaltyPct,
			IsListed:     true,
			CreatedAt:    now,
		}
		if err := tx.CreateArtwork(ctx, artwork); err != nil {
			return err
		}

		if err := tx.AppendOwnershipRecord(ctx, &schema.OwnershipRecord{
			TokenID:    tokenID,
			Owner:      caller,
			AcquiredAt: now,
		}); err != nil {
			return err
		}
		if err := tx.AppendCollectionEntry(ctx, &schema.CollectionEntry{
			Collector:  caller,
			TokenID:    tokenID,
			AcquiredAt: now,
		}); err != nil {
			return err
		}

		artist.ArtworksCreated++
		artist.Reputation += domain.ReputationMintBonus
		return tx.SaveArtist(ctx, artist)
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx,
		domain.NewEvent(domain.EventArtworkMinted, domain.ArtworkEventData{
			TokenID: artwork.TokenID,
			Artist:  caller,
			Owner:   caller,
			Price:   artwork.Price,
		}),
		domain.NewEvent(domain.EventArtworkListed, domain.ArtworkEventData{
			TokenID: artwork.TokenID,
			Owner:   caller,
			Price:   artwork.Price,
		}))
	return artwork, nil
}

// ListArtwork puts an owned, unlisted artwork up for sale.
func (e *Engine) ListArtwork(ctx context.Context, caller domain.Address, tokenID uint64, price uint64) error {
	if price < e.params.MinListingPrice {
		return fmt.Errorf("%w: price %d is below the minimum %d",
			domain.ErrPriceTooLow, price, e.params.MinListingPrice)
	}

	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		artwork, err := requireTokenOwner(ctx, tx, caller, tokenID)
		if err != nil {
			return err
		}
		if artwork.IsListed {
			return fmt.Errorf("%w: artwork %d", domain.ErrAlreadyListed, tokenID)
		}

		artwork.IsListed = true
		artwork.Price = price
		return tx.SaveArtwork(ctx, artwork)
	})
	if err != nil {
		return err
	}

	e.publish(ctx, domain.NewEvent(domain.EventArtworkListed, domain.ArtworkEventData{
		TokenID: tokenID,
		Owner:   caller,
		Price:   price,
	}))
	return nil
}

// UnlistArtwork takes a listed artwork off sale.
func (e *Engine) UnlistArtwork(ctx context.Context, caller domain.Address, tokenID uint64) error {
	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		artwork, err := requireTokenOwner(ctx, tx, caller, tokenID)
		if err != nil {
			return err
		}
		if !artwork.IsListed {
			return fmt.Errorf("%w: artwork %d", domain.ErrNotListed, tokenID)
		}

		artwork.IsListed = false
		return tx.SaveArtwork(ctx, artwork)
	})
	if err != nil {
		return err
	}

	e.publish(ctx, domain.NewEvent(domain.EventArtworkUnlisted, domain.ArtworkEventData{
		TokenID: tokenID,
		Owner:   caller,
	}))
	return nil
}

// UpdatePrice changes the asking price of a listed artwork.
func (e *Engine) UpdatePrice(ctx context.Context, caller domain.Address, tokenID uint64, newPrice uint64) error {
	if newPrice < e.params.MinListingPrice {
		return fmt.Errorf("%w: price %d is below the minimum %d",
			domain.ErrPriceTooLow, newPrice, e.params.MinListingPrice)
	}

	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		artwork, err := requireTokenOwner(ctx, tx, caller, tokenID)
		if err != nil {
			return err
		}
		if !artwork.IsListed {
			return fmt.Errorf("%w: artwork %d", domain.ErrNotListed, tokenID)
		}

		artwork.Price = newPrice
		return tx.SaveArtwork(ctx, artwork)
	})
	if err != nil {
		return err
	}

	e.publish(ctx, domain.NewEvent(domain.EventArtworkPriceUpdated, domain.ArtworkEventData{
		TokenID: tokenID,
		Owner:   caller,
		Price:   newPrice,
	}))
	return nil
}
