// Package ledger implements the marketplace core: artist registry, artwork
// lifecycle, purchase settlement and administrative operations. Every
// mutating operation runs inside a single store transaction and either
// commits all of its effects or none of them.
package ledger

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/logger"
	"github.com/feral-file/ff-marketplace/internal/messaging"
	"github.com/feral-file/ff-marketplace/internal/store"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
	"github.com/feral-file/ff-marketplace/internal/vault"
)

// Params are the marketplace operating parameters fixed at startup.
type Params struct {
	// AdminAddress seeds the platform owner on first boot. Later ownership
	// transfers are persisted and take precedence.
	AdminAddress domain.Address
	// MinListingPrice is the smallest price an artwork may be listed at,
	// in base units.
	MinListingPrice uint64
	// VerificationFee is the value an artist must attach to verify.
	VerificationFee uint64
	// DefaultFeePct seeds the platform fee percentage on first boot.
	DefaultFeePct uint64
}

// Engine executes marketplace operations against a Store and moves value
// through a Vault. It is safe for concurrent use; operations that pay out
// value are additionally serialized by the reentrancy guard.
type Engine struct {
	store  store.Store
	vault  *vault.Vault
	events messaging.Publisher
	params Params
	guard  guard
}

func NewEngine(s store.Store, v *vault.Vault, events messaging.Publisher, params Params) *Engine {
	return &Engine{
		store:  s,
		vault:  v,
		events: events,
		params: params,
	}
}

// Vault exposes the engine's vault so callers can fund accounts and register
// transfer hooks.
func (e *Engine) Vault() *vault.Vault {
	return e.vault
}

// Bootstrap seeds the platform state (owner, fee percentage, trading volume)
// if this is a fresh ledger. Existing state is left untouched.
func (e *Engine) Bootstrap(ctx context.Context) error {
	if !e.params.AdminAddress.Valid() {
		return fmt.Errorf("%w: invalid admin address %q", domain.ErrInvalidInput, e.params.AdminAddress)
	}
	if e.params.DefaultFeePct > domain.MaxPlatformFeePct {
		return fmt.Errorf("%w: default platform fee %d exceeds %d",
			domain.ErrInvalidInput, e.params.DefaultFeePct, domain.MaxPlatformFeePct)
	}
	if err := e.store.EnsurePlatformState(ctx, e.params.AdminAddress, e.params.DefaultFeePct); err != nil {
		return fmt.Errorf("failed to seed platform state: %w", err)
	}
	return nil
}

// publish sends events after a successful commit. Publishing is advisory, a
// broker failure never fails the committed operation.
func (e *Engine) publish(ctx context.Context, events ...*domain.Event) {
	for _, event := range events {
		if err := e.events.PublishEvent(ctx, event); err != nil {
			logger.ErrorCtx(ctx, err,
				zap.String("message", "failed to publish event"),
				zap.String("event_type", string(event.Type)))
		}
	}
}

// requireArtwork loads an artwork or fails with NotFound.
func requireArtwork(ctx context.Context, tx store.Store, tokenID uint64, forUpdate bool) (*schema.Artwork, error) {
	var (
		artwork *schema.Artwork
		err     error
	)
	if forUpdate {
		artwork, err = tx.GetArtworkForUpdate(ctx, tokenID)
	} else {
		artwork, err = tx.GetArtwork(ctx, tokenID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artwork %d: %w", tokenID, err)
	}
	if artwork == nil {
		return nil, fmt.Errorf("%w: artwork %d", domain.ErrNotFound, tokenID)
	}
	return artwork, nil
}

// requireTokenOwner loads an artwork and checks the caller owns it.
func requireTokenOwner(ctx context.Context, tx store.Store, caller domain.Address, tokenID uint64) (*schema.Artwork, error) {
	artwork, err := requireArtwork(ctx, tx, tokenID, true)
	if err != nil {
		return nil, err
	}
	if artwork.CurrentOwner != caller {
		return nil, fmt.Errorf("%w: %s does not own artwork %d", domain.ErrUnauthorized, caller, tokenID)
	}
	return artwork, nil
}

// requirePlatformOwner checks the caller is the platform owner and returns
// the owner address.
func requirePlatformOwner(ctx context.Context, tx store.Store, caller domain.Address) (domain.Address, error) {
	owner, err := tx.GetPlatformOwner(ctx)
	if err != nil {
		return domain.ZeroAddress, fmt.Errorf("failed to get platform owner: %w", err)
	}
	if caller != owner {
		return domain.ZeroAddress, fmt.Errorf("%w: %s is not the platform owner", domain.ErrUnauthorized, caller)
	}
	return owner, nil
}
