package schema

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// Sale represents the sales table - an append-only log of completed purchases.
// Rows are immutable historical records, never updated or deleted. SaleID is
// dense and gapless starting at 1.
type Sale struct {
	// SaleID is the marketplace-wide sale identifier
	SaleID uint64 `gorm:"column:sale_id;primaryKey"`
	// TokenID references the artwork that was sold
	TokenID uint64 `gorm:"column:token_id;not null;index:idx_sales_token"`
	// Seller is the identity that owned the artwork before the sale
	Seller domain.Address `gorm:"column:seller;not null;type:text;index:idx_sales_seller"`
	// Buyer is the identity that acquired the artwork
	Buyer domain.Address `gorm:"column:buyer;not null;type:text;index:idx_sales_buyer"`
	// Price is the listing price the settlement was computed from, not the submitted value
	Price uint64 `gorm:"column:price;not null"`
	// PlatformFee is the fee leg paid to the platform owner
	PlatformFee uint64 `gorm:"column:platform_fee;not null"`
	// RoyaltyFee is the royalty leg paid to the original artist (zero on primary sales)
	RoyaltyFee uint64 `gorm:"column:royalty_fee;not null"`
	// SellerAmount is the remainder paid to the seller
	SellerAmount uint64 `gorm:"column:seller_amount;not null"`
	// IsSecondarySale records whether a prior sale of the token had completed
	IsSecondarySale bool `gorm:"column:is_secondary_sale;not null"`
	// Raw carries the full settlement breakdown as JSON for audit and debugging
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// Timestamp is when the sale settled
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`

	// Associations
	Artwork Artwork `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
