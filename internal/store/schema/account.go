package schema

import (
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
)

// Account represents the accounts table - vault balances in base units.
// Rows exist for any identity that has ever held value, including the
// platform treasury.
type Account struct {
	// Address is the account identity
	Address domain.Address `gorm:"column:address;primaryKey;type:text"`
	// Balance is the current balance in base units
	Balance uint64 `gorm:"column:balance;not null;default:0"`
	// UpdatedAt is the timestamp of the last balance change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz;autoUpdateTime"`
	// CreatedAt is the timestamp the account first held value
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;autoCreateTime"`
}

// TableName specifies the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
