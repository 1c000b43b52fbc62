package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// RegisterArtist creates an artist record for the caller. Registration is a
// one-time act per identity.
func (e *Engine) RegisterArtist(ctx context.Context, caller domain.Address, profileReference string) (*schema.Artist, error) {
	if !caller.Valid() {
		return nil, fmt.Errorf("%w: invalid caller address %q", domain.ErrInvalidInput, caller)
	}
	if profileReference == "" {
		return nil, fmt.Errorf("%w: profile reference must not be empty", domain.ErrInvalidInput)
	}

	artist := &schema.Artist{
		Address:          caller,
		ProfileReference: profileReference,
		RegisteredAt:     time.Now().UTC(),
	}

	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		existing, err := tx.GetArtist(ctx, caller)
		if err != nil {
			return fmt.Errorf("failed to get artist %s: %w", caller, err)
		}
		if existing != nil {
			return fmt.Errorf("%w: artist %s", domain.ErrAlreadyRegistered, caller)
		}
		return tx.CreateArtist(ctx, artist)
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, domain.NewEvent(domain.EventArtistRegistered, domain.ArtistEventData{
		Address:          caller,
		ProfileReference: profileReference,
	}))
	return artist, nil
}

// VerifyArtist marks a registered artist as verified. The attached value must
// cover the verification fee and is paid to the platform owner in full;
// overpayment is not refunded.
func (e *Engine) VerifyArtist(ctx context.Context, caller domain.Address, submittedValue uint64) error {
	if !e.guard.enter() {
		return domain.ErrReentrantCall
	}
	defer e.guard.exit()

	err := e.store.WithinTransaction(ctx, func(tx store.Store) error {
		artist, err := tx.GetArtistForUpdate(ctx, caller)
		if err != nil {
			return fmt.Errorf("failed to get artist %s: %w", caller, err)
		}
		if artist == nil {
			return fmt.Errorf("%w: artist %s", domain.ErrNotRegistered, caller)
		}
		if artist.Verified {
			return fmt.Errorf("%w: artist %s", domain.ErrAlreadyVerified, caller)
		}
		if submittedValue < e.params.VerificationFee {
			return fmt.Errorf("%w: verification requires %d, got %d",
				domain.ErrInsufficientPayment, e.params.VerificationFee, submittedValue)
		}

		owner, err := tx.GetPlatformOwner(ctx)
		if err != nil {
			return fmt.Errorf("failed to get platform owner: %w", err)
		}

		// The whole submitted value goes to the platform owner, even the
		// part above the fee.
		if err := e.vault.Transfer(ctx, tx, caller, owner, submittedValue); err != nil {
			return err
		}

		artist.Verified = true
		return tx.SaveArtist(ctx, artist)
	})
	if err != nil {
		return err
	}

	e.publish(ctx, domain.NewEvent(domain.EventArtistVerified, domain.ArtistEventData{
		Address: caller,
		FeePaid: submittedValue,
	}))
	return nil
}
