package schema

import (
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// OwnershipRecord represents the ownership_records table - the append-only,
// chronological log of every owner a token has had. Index 0 for a token is
// always its original artist.
type OwnershipRecord struct {
	// ID is the internal database primary key; insertion order is chronological order
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TokenID references the artwork this record belongs to
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_ownership_records_token"`
	// Owner is the identity that held the artwork at this point in its history
	Owner domain.Address `gorm:"column:owner;not null;type:text"`
	// AcquiredAt is when this owner took possession
	AcquiredAt time.Time `gorm:"column:acquired_at;not null;type:timestamptz"`

	// Associations
	Artwork Artwork `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the OwnershipRecord model
func (OwnershipRecord) TableName() string {
	return "ownership_records"
}
