package schema

import "time"

// KeyValueStore stores arbitrary key-value pairs for platform state.
// Used for the token/sale ID counters, the platform fee percentage, the
// platform owner address, and aggregate trading stats.
type KeyValueStore struct {
	Key       string    `gorm:"primaryKey;type:text"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}
