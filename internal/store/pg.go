package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// key_value_store keys for platform state
const (
	kvTokenCounter  = "counter:token_id"
	kvSaleCounter   = "counter:sale_id"
	kvPlatformFee   = "platform:fee_pct"
	kvPlatformOwner = "platform:owner"
	kvTradingVolume = "platform:trading_volume"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the ledger tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Artist{},
		&schema.Artwork{},
		&schema.Sale{},
		&schema.OwnershipRecord{},
		&schema.CollectionEntry{},
		&schema.Account{},
		&schema.KeyValueStore{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// WithinTransaction runs fn against a transaction-scoped store
func (s *pgStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}

// GetArtist retrieves an artist by identity
func (s *pgStore) GetArtist(ctx context.Context, address domain.Address) (*schema.Artist, error) {
	var artist schema.Artist
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&artist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}
	return &artist, nil
}

// GetArtistForUpdate retrieves an artist with a row lock held until commit
func (s *pgStore) GetArtistForUpdate(ctx context.Context, address domain.Address) (*schema.Artist, error) {
	var artist schema.Artist
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", address).
		First(&artist).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock artist: %w", err)
	}
	return &artist, nil
}

// CreateArtist inserts a new artist record
func (s *pgStore) CreateArtist(ctx context.Context, artist *schema.Artist) error {
	if err := s.db.WithContext(ctx).Create(artist).Error; err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

// SaveArtist persists changes to an existing artist record
func (s *pgStore) SaveArtist(ctx context.Context, artist *schema.Artist) error {
	if err := s.db.WithContext(ctx).Save(artist).Error; err != nil {
		return fmt.Errorf("failed to save artist: %w", err)
	}
	return nil
}

// CountArtists returns the number of registered artists
func (s *pgStore) CountArtists(ctx context.Context) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Artist{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count artists: %w", err)
	}
	return uint64(count), nil
}

// GetArtwork retrieves an artwork by token ID
func (s *pgStore) GetArtwork(ctx context.Context, tokenID uint64) (*schema.Artwork, error) {
	var artwork schema.Artwork
	err := s.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&artwork).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artwork: %w", err)
	}
	return &artwork, nil
}

// GetArtworkForUpdate retrieves an artwork with a row lock held until commit
func (s *pgStore) GetArtworkForUpdate(ctx context.Context, tokenID uint64) (*schema.Artwork, error) {
	var artwork schema.Artwork
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_id = ?", tokenID).
		First(&artwork).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock artwork: %w", err)
	}
	return &artwork, nil
}

// CreateArtwork inserts a new artwork record
func (s *pgStore) CreateArtwork(ctx context.Context, artwork *schema.Artwork) error {
	if err := s.db.WithContext(ctx).Create(artwork).Error; err != nil {
		return fmt.Errorf("failed to create artwork: %w", err)
	}
	return nil
}

// SaveArtwork persists changes to an existing artwork record
func (s *pgStore) SaveArtwork(ctx context.Context, artwork *schema.Artwork) error {
	if err := s.db.WithContext(ctx).Save(artwork).Error; err != nil {
		return fmt.Errorf("failed to save artwork: %w", err)
	}
	return nil
}

// GetArtworksByArtist returns the artworks created by an identity, oldest first
func (s *pgStore) GetArtworksByArtist(ctx context.Context, artist domain.Address) ([]schema.Artwork, error) {
	var artworks []schema.Artwork
	err := s.db.WithContext(ctx).
		Where("artist = ?", artist).
		Order("token_id ASC").
		Find(&artworks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get artworks by artist: %w", err)
	}
	return artworks, nil
}

// CountArtworks returns the number of minted artworks
func (s *pgStore) CountArtworks(ctx context.Context) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Artwork{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count artworks: %w", err)
	}
	return uint64(count), nil
}

// AppendOwnershipRecord appends to a token's chronological owner log
func (s *pgStore) AppendOwnershipRecord(ctx context.Context, record *schema.OwnershipRecord) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to append ownership record: %w", err)
	}
	return nil
}

// GetOwnershipHistory returns a token's owner log in chronological order
func (s *pgStore) GetOwnershipHistory(ctx context.Context, tokenID uint64) ([]schema.OwnershipRecord, error) {
	var records []schema.OwnershipRecord
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get ownership history: %w", err)
	}
	return records, nil
}

// AppendCollectionEntry appends to an identity's acquisition list
func (s *pgStore) AppendCollectionEntry(ctx context.Context, entry *schema.CollectionEntry) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append collection entry: %w", err)
	}
	return nil
}

// GetCollection returns an identity's acquisitions in chronological order
func (s *pgStore) GetCollection(ctx context.Context, collector domain.Address) ([]schema.CollectionEntry, error) {
	var entries []schema.CollectionEntry
	err := s.db.WithContext(ctx).
		Where("collector = ?", collector).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	return entries, nil
}

// CreateSale appends an immutable sale record
func (s *pgStore) CreateSale(ctx context.Context, sale *schema.Sale) error {
	if err := s.db.WithContext(ctx).Create(sale).Error; err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// GetSale retrieves a sale by ID
func (s *pgStore) GetSale(ctx context.Context, saleID uint64) (*schema.Sale, error) {
	var sale schema.Sale
	err := s.db.WithContext(ctx).Where("sale_id = ?", saleID).First(&sale).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sale: %w", err)
	}
	return &sale, nil
}

// GetSalesByToken returns a token's sales in chronological order
func (s *pgStore) GetSalesByToken(ctx context.Context, tokenID uint64) ([]schema.Sale, error) {
	var sales []schema.Sale
	err := s.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("sale_id ASC").
		Find(&sales).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get sales by token: %w", err)
	}
	return sales, nil
}

// CountSales returns the number of completed sales
func (s *pgStore) CountSales(ctx context.Context) (uint64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&schema.Sale{}).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count sales: %w", err)
	}
	return uint64(count), nil
}

// GetAccount retrieves a vault account
func (s *pgStore) GetAccount(ctx context.Context, address domain.Address) (*schema.Account, error) {
	var account schema.Account
	err := s.db.WithContext(ctx).Where("address = ?", address).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// CreditAccount adds to an account balance, creating the account if needed
func (s *pgStore) CreditAccount(ctx context.Context, address domain.Address, amount uint64) error {
	account := schema.Account{
		Address: address,
		Balance: amount,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "address"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"balance":    gorm.Expr("accounts.balance + ?", amount),
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&account).Error
	if err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}
	return nil
}

// DebitAccount subtracts from an account balance
func (s *pgStore) DebitAccount(ctx context.Context, address domain.Address, amount uint64) error {
	var account schema.Account
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("address = ?", address).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrInsufficientFunds
		}
		return fmt.Errorf("failed to lock account: %w", err)
	}

	if account.Balance < amount {
		return domain.ErrInsufficientFunds
	}

	account.Balance -= amount
	if err := s.db.WithContext(ctx).Save(&account).Error; err != nil {
		return fmt.Errorf("failed to debit account: %w", err)
	}
	return nil
}

// NextTokenID allocates the next sequential token ID under a counter lock
func (s *pgStore) NextTokenID(ctx context.Context) (uint64, error) {
	return s.nextCounter(ctx, kvTokenCounter)
}

// NextSaleID allocates the next sequential sale ID under a counter lock
func (s *pgStore) NextSaleID(ctx context.Context) (uint64, error) {
	return s.nextCounter(ctx, kvSaleCounter)
}

// nextCounter increments a key_value_store counter under SELECT ... FOR UPDATE.
// Counters (rather than sequences) keep the ID space dense and gapless: a
// rolled-back operation rolls the increment back with it.
func (s *pgStore) nextCounter(ctx context.Context, key string) (uint64, error) {
	kv, err := s.lockOrCreateKV(ctx, key, "0")
	if err != nil {
		return 0, err
	}

	current, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse counter %s: %w", key, err)
	}

	next := current + 1
	kv.Value = strconv.FormatUint(next, 10)
	if err := s.db.WithContext(ctx).Save(kv).Error; err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", key, err)
	}

	return next, nil
}

// lockOrCreateKV locks a key_value_store row for update, creating it with the
// given initial value if it does not exist yet
func (s *pgStore) lockOrCreateKV(ctx context.Context, key, initial string) (*schema.KeyValueStore, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key).
		First(&kv).Error
	if err == nil {
		return &kv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to lock %s: %w", key, err)
	}

	kv = schema.KeyValueStore{Key: key, Value: initial}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&kv).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", key, err)
	}

	// Re-read under lock in case a concurrent transaction created it first
	err = s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("key = ?", key).
		First(&kv).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s after create: %w", key, err)
	}
	return &kv, nil
}

// getKV reads a key_value_store value; ok is false when the key is absent
func (s *pgStore) getKV(ctx context.Context, key string) (string, bool, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return kv.Value, true, nil
}

// setKV upserts a key_value_store value
func (s *pgStore) setKV(ctx context.Context, key, value string) error {
	kv := schema.KeyValueStore{Key: key, Value: value}
	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// EnsurePlatformState seeds the platform owner and fee percentage if absent
func (s *pgStore) EnsurePlatformState(ctx context.Context, owner domain.Address, feePct uint64) error {
	seeds := []schema.KeyValueStore{
		{Key: kvPlatformOwner, Value: owner.String()},
		{Key: kvPlatformFee, Value: strconv.FormatUint(feePct, 10)},
		{Key: kvTradingVolume, Value: "0"},
	}
	for _, seed := range seeds {
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&seed).Error
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", seed.Key, err)
		}
	}
	return nil
}

// GetPlatformFeePct returns the current platform fee percentage
func (s *pgStore) GetPlatformFeePct(ctx context.Context) (uint64, error) {
	value, ok, err := s.getKV(ctx, kvPlatformFee)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("platform fee not initialized")
	}

	pct, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse platform fee: %w", err)
	}
	return pct, nil
}

// SetPlatformFeePct updates the platform fee percentage
func (s *pgStore) SetPlatformFeePct(ctx context.Context, pct uint64) error {
	return s.setKV(ctx, kvPlatformFee, strconv.FormatUint(pct, 10))
}

// GetPlatformOwner returns the platform administrator identity
func (s *pgStore) GetPlatformOwner(ctx context.Context) (domain.Address, error) {
	value, ok, err := s.getKV(ctx, kvPlatformOwner)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("platform owner not initialized")
	}
	return domain.Address(value), nil
}

// SetPlatformOwner updates the platform administrator identity
func (s *pgStore) SetPlatformOwner(ctx context.Context, owner domain.Address) error {
	return s.setKV(ctx, kvPlatformOwner, owner.String())
}

// AddTradingVolume accumulates settled sale value into the running total
func (s *pgStore) AddTradingVolume(ctx context.Context, amount uint64) error {
	kv, err := s.lockOrCreateKV(ctx, kvTradingVolume, "0")
	if err != nil {
		return err
	}

	current, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return fmt.Errorf("failed to parse trading volume: %w", err)
	}

	kv.Value = strconv.FormatUint(current+amount, 10)
	if err := s.db.WithContext(ctx).Save(kv).Error; err != nil {
		return fmt.Errorf("failed to add trading volume: %w", err)
	}
	return nil
}

// GetTradingVolume returns the cumulative settled sale value
func (s *pgStore) GetTradingVolume(ctx context.Context) (uint64, error) {
	value, ok, err := s.getKV(ctx, kvTradingVolume)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}

	volume, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse trading volume: %w", err)
	}
	return volume, nil
}
