package schema

import (
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// Artwork represents the artworks table - the primary entity for minted pieces.
// TokenID is dense and gapless starting at 1; IDs are allocated from a locked
// counter inside the mint transaction so a failed mint never burns an ID.
type Artwork struct {
	// TokenID is the marketplace-wide token identifier, assigned at mint and never reused
	TokenID uint64 `gorm:"column:token_id;primaryKey"`
	// Artist is the immutable creator identity, distinct from the current owner
	Artist domain.Address `gorm:"column:artist;not null;type:text;index:idx_artworks_artist"`
	// CurrentOwner is the identity that presently holds the artwork
	CurrentOwner domain.Address `gorm:"column:current_owner;not null;type:text;index:idx_artworks_current_owner"`
	// Title is the display title of the artwork
	Title string `gorm:"column:title;not null;type:text"`
	// Description is the optional long-form description
	Description string `gorm:"column:description;type:text"`
	// ContentHash is the opaque reference to the off-chain asset; never fetched or validated here
	ContentHash string `gorm:"column:content_hash;not null;type:text"`
	// Price is the listing price in base units
	Price uint64 `gorm:"column:price;not null"`
	// RoyaltyPct is the secondary-sale royalty percentage [0, 30], fixed at mint
	RoyaltyPct uint64 `gorm:"column:royalty_pct;not null"`
	// IsListed indicates whether the artwork is currently available for purchase
	IsListed bool `gorm:"column:is_listed;not null;default:false"`
	// SalesCount is the number of completed sales; zero means no sale has happened yet,
	// which is the sole signal distinguishing a primary sale from a secondary one
	SalesCount uint64 `gorm:"column:sales_count;not null;default:0"`
	// CreatedAt is the mint timestamp
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Sales            []Sale            `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
	OwnershipRecords []OwnershipRecord `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Artwork model
func (Artwork) TableName() string {
	return "artworks"
}
