package store

import (
	"context"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// Store defines the interface for ledger database operations.
//
// Lookups return (nil, nil) when the entity does not exist; callers decide
// whether absence is an error. The ForUpdate variants and the counter/state
// mutators are only meaningful inside WithinTransaction.
type Store interface {
	// WithinTransaction runs fn against a transaction-scoped store. Any
	// error returned by fn rolls back every write made through it. This is
	// the all-or-nothing commit boundary every ledger operation runs in.
	WithinTransaction(ctx context.Context, fn func(tx Store) error) error

	// GetArtist retrieves an artist by identity
	GetArtist(ctx context.Context, address domain.Address) (*schema.Artist, error)
	// GetArtistForUpdate retrieves an artist with a row lock held until commit
	GetArtistForUpdate(ctx context.Context, address domain.Address) (*schema.Artist, error)
	// CreateArtist inserts a new artist record
	CreateArtist(ctx context.Context, artist *schema.Artist) error
	// SaveArtist persists changes to an existing artist record
	SaveArtist(ctx context.Context, artist *schema.Artist) error
	// CountArtists returns the number of registered artists
	CountArtists(ctx context.Context) (uint64, error)

	// GetArtwork retrieves an artwork by token ID
	GetArtwork(ctx context.Context, tokenID uint64) (*schema.Artwork, error)
	// GetArtworkForUpdate retrieves an artwork with a row lock held until commit
	GetArtworkForUpdate(ctx context.Context, tokenID uint64) (*schema.Artwork, error)
	// CreateArtwork inserts a new artwork record
	CreateArtwork(ctx context.Context, artwork *schema.Artwork) error
	// SaveArtwork persists changes to an existing artwork record
	SaveArtwork(ctx context.Context, artwork *schema.Artwork) error
	// GetArtworksByArtist returns the artworks created by an identity, oldest first
	GetArtworksByArtist(ctx context.Context, artist domain.Address) ([]schema.Artwork, error)
	// CountArtworks returns the number of minted artworks
	CountArtworks(ctx context.Context) (uint64, error)

	// AppendOwnershipRecord appends to a token's chronological owner log
	AppendOwnershipRecord(ctx context.Context, record *schema.OwnershipRecord) error
	// GetOwnershipHistory returns a token's owner log in chronological order
	GetOwnershipHistory(ctx context.Context, tokenID uint64) ([]schema.OwnershipRecord, error)
	// AppendCollectionEntry appends to an identity's acquisition list
	AppendCollectionEntry(ctx context.Context, entry *schema.CollectionEntry) error
	// GetCollection returns an identity's acquisitions in chronological order,
	// duplicates included
	GetCollection(ctx context.Context, collector domain.Address) ([]schema.CollectionEntry, error)

	// CreateSale appends an immutable sale record
	CreateSale(ctx context.Context, sale *schema.Sale) error
	// GetSale retrieves a sale by ID
	GetSale(ctx context.Context, saleID uint64) (*schema.Sale, error)
	// GetSalesByToken returns a token's sales in chronological order
	GetSalesByToken(ctx context.Context, tokenID uint64) ([]schema.Sale, error)
	// CountSales returns the number of completed sales
	CountSales(ctx context.Context) (uint64, error)

	// GetAccount retrieves a vault account; (nil, nil) means zero balance
	GetAccount(ctx context.Context, address domain.Address) (*schema.Account, error)
	// CreditAccount adds to an account balance, creating the account if needed
	CreditAccount(ctx context.Context, address domain.Address, amount uint64) error
	// DebitAccount subtracts from an account balance; returns
	// domain.ErrInsufficientFunds when the balance cannot cover the amount
	DebitAccount(ctx context.Context, address domain.Address, amount uint64) error

	// NextTokenID allocates the next sequential token ID under a counter lock
	NextTokenID(ctx context.Context) (uint64, error)
	// NextSaleID allocates the next sequential sale ID under a counter lock
	NextSaleID(ctx context.Context) (uint64, error)

	// EnsurePlatformState seeds the platform owner and fee percentage if absent
	EnsurePlatformState(ctx context.Context, owner domain.Address, feePct uint64) error
	// GetPlatformFeePct returns the current platform fee percentage
	GetPlatformFeePct(ctx context.Context) (uint64, error)
	// SetPlatformFeePct updates the platform fee percentage
	SetPlatformFeePct(ctx context.Context, pct uint64) error
	// GetPlatformOwner returns the platform administrator identity
	GetPlatformOwner(ctx context.Context) (domain.Address, error)
	// SetPlatformOwner updates the platform administrator identity
	SetPlatformOwner(ctx context.Context, owner domain.Address) error
	// AddTradingVolume accumulates settled sale value into the running total
	AddTradingVolume(ctx context.Context, amount uint64) error
	// GetTradingVolume returns the cumulative settled sale value
	GetTradingVolume(ctx context.Context) (uint64, error)
}
