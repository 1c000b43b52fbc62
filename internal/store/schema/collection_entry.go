package schema

import (
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// CollectionEntry represents the collection_entries table - the append-only
// per-identity list of token acquisitions. An identity that sells a token and
// later re-acquires it gets a second entry; the list is deliberately not
// deduplicated.
type CollectionEntry struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Collector is the identity that acquired the token
	Collector domain.Address `gorm:"column:collector;not null;type:text;index:idx_collection_entries_collector"`
	// TokenID references the acquired artwork
	TokenID uint64 `gorm:"column:token_id;not null"`
	// AcquiredAt is when the acquisition happened
	AcquiredAt time.Time `gorm:"column:acquired_at;not null;type:timestamptz"`

	// Associations
	Artwork Artwork `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CollectionEntry model
func (CollectionEntry) TableName() string {
	return "collection_entries"
}
