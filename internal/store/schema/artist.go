package schema

import (
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// Artist represents the artists table - one row per registered creator identity.
// Registration is a one-time irrevocable act: rows are never deleted, and the
// presence of a row (not an inferred flag) is what "registered" means.
type Artist struct {
	// Address is the creator's account identity
	Address domain.Address `gorm:"column:address;primaryKey;type:text"`
	// Verified is the one-way false-to-true verification status
	Verified bool `gorm:"column:verified;not null;default:false"`
	// ProfileReference is the opaque off-chain profile pointer, set once at registration
	ProfileReference string `gorm:"column:profile_reference;not null;type:text"`
	// ArtworksCreated counts the artist's mints
	ArtworksCreated uint64 `gorm:"column:artworks_created;not null;default:0"`
	// TotalEarnings is the cumulative value credited to the artist from sales and royalties
	TotalEarnings uint64 `gorm:"column:total_earnings;not null;default:0"`
	// Reputation is the monotonically increasing score (+10 per mint, +5 per sale)
	Reputation uint64 `gorm:"column:reputation;not null;default:0"`
	// RegisteredAt is the registration timestamp
	RegisteredAt time.Time `gorm:"column:registered_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Artist model
func (Artist) TableName() string {
	return "artists"
}
