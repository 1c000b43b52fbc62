package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// Purchase settles a sale of the given artwork to the caller. The caller's
// account is debited by submittedValue; the price is split between the
// seller, the platform treasury and (on resales) the original artist, and
// anything above the price is refunded to the caller. All legs and state
// updates commit atomically or not at all.
func (e *Engine) Purchase(ctx context.Context, caller domain.Address, tokenID uint64, submittedValue uint64) (*schema.Sale, error) {
	if !e.guard.enter() {
		return nil, domain.ErrReentrantCall
	}
	defer e.guard.exit()

	var (
		sale    *schema.Sale
		royalty *domain.RoyaltyEventData
	)
	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		artwork, err := requireArtwork(ctx, tx, tokenID, true)
		if err != nil {
			return err
		}
		if !artwork.IsListed {
			return fmt.Errorf("%w: artwork %d", domain.ErrNotForSale, tokenID)
		}
		if caller == artwork.CurrentOwner {
			return fmt.Errorf("%w: %s already owns artwork %d", domain.ErrSelfPurchase, caller, tokenID)
		}
		price := artwork.Price
		if submittedValue < price {
			return fmt.Errorf("%w: artwork %d costs %d, got %d",
				domain.ErrInsufficientPayment, tokenID, price, submittedValue)
		}

		// Take the whole attached value up front; the legs below pay it
		// back out.
		if err := tx.DebitAccount(ctx, caller, submittedValue); err != nil {
			return fmt.Errorf("failed to take payment from %s: %w", caller, err)
		}

		seller := artwork.CurrentOwner
		isSecondary := artwork.SalesCount > 0

		feePct, err := tx.GetPlatformFeePct(ctx)
		if err != nil {
			return err
		}
		platformFee := price * feePct / 100
		var royaltyFee uint64
		if isSecondary {
			royaltyFee = price * artwork.RoyaltyPct / 100
		}
		sellerAmount := price - platformFee - royaltyFee

		artist, err := tx.GetArtistForUpdate(ctx, artwork.Artist)
		if err != nil {
			return fmt.Errorf("failed to get artist %s: %w", artwork.Artist, err)
		}
		if artist == nil {
			return fmt.Errorf("%w: artist %s", domain.ErrNotFound, artwork.Artist)
		}

		// Payment legs. Royalty goes to the original artist, never the
		// seller. Any leg a recipient hook rejects aborts the purchase.
		if royaltyFee > 0 {
			if err := e.vault.Credit(ctx, tx, caller, artwork.Artist, royaltyFee); err != nil {
				return err
			}
		}
		if err := e.vault.Credit(ctx, tx, caller, seller, sellerAmount); err != nil {
			return err
		}
		if err := e.vault.Credit(ctx, tx, caller, domain.TreasuryAddress, platformFee); err != nil {
			return err
		}

		// Earnings: a first sale pays the artist the seller amount, a
		// resale pays them only the royalty.
		if isSecondary {
			artist.TotalEarnings += royaltyFee
		} else {
			artist.TotalEarnings += sellerAmount
		}
		artist.Reputation += domain.ReputationSaleBonus
		if err := tx.SaveArtist(ctx, artist); err != nil {
			return err
		}

		now := time.Now().UTC()
		artwork.CurrentOwner = caller
		artwork.IsListed = false
		artwork.SalesCount++
		if err := tx.SaveArtwork(ctx, artwork); err != nil {
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

		saleID, err := tx.NextSaleID(ctx)
		if err != nil {
			return err
		}
		breakdown := domain.SaleEventData{
			SaleID:          saleID,
			TokenID:         tokenID,
			Seller:          seller,
			Buyer:           caller,
			Price:           price,
			PlatformFee:     platformFee,
			RoyaltyFee:      royaltyFee,
			SellerAmount:    sellerAmount,
			IsSecondarySale: isSecondary,
		}
		raw, err := json.Marshal(breakdown)
		if err != nil {
			return fmt.Errorf("failed to marshal settlement breakdown: %w", err)
		}
		sale = &schema.Sale{
			SaleID:          saleID,
			TokenID:         tokenID,
			Seller:          seller,
			Buyer:           caller,
			Price:           price,
			PlatformFee:     platformFee,
			RoyaltyFee:      royaltyFee,
			SellerAmount:    sellerAmount,
			IsSecondarySale: isSecondary,
			Raw:             datatypes.JSON(raw),
			Timestamp:       now,
		}
		if err := tx.CreateSale(ctx, sale); err != nil {
			return err
		}
		if err := tx.AddTradingVolume(ctx, price); err != nil {
			return err
		}

		// Refund the overpayment last. A rejected refund is fatal too.
		if refund := submittedValue - price; refund > 0 {
			if err := e.vault.Credit(ctx, tx, domain.TreasuryAddress, caller, refund); err != nil {
				return err
			}
		}

		if isSecondary {
			royalty = &domain.RoyaltyEventData{
				TokenID: tokenID,
				Artist:  artwork.Artist,
				Amount:  royaltyFee,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events := []*domain.Event{
		domain.NewEvent(domain.EventArtworkPurchased, domain.SaleEventData{
			SaleID:          sale.SaleID,
			TokenID:         sale.TokenID,
			Seller:          sale.Seller,
			Buyer:           sale.Buyer,
			Price:           sale.Price,
			PlatformFee:     sale.PlatformFee,
			RoyaltyFee:      sale.RoyaltyFee,
			SellerAmount:    sale.SellerAmount,
			IsSecondarySale: sale.IsSecondarySale,
		}),
	}
	if royalty != nil {
		events = append(events, domain.NewEvent(domain.EventRoyaltyPaid, *royalty))
	}
	e.publish(ctx, events...)
	return sale, nil
}
