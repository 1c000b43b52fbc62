package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// memState is the complete ledger state held by the memory store. All fields
// use value types so a clone is a full snapshot.
type memState struct {
	artists     map[domain.Address]schema.Artist
	artworks    map[uint64]schema.Artwork
	sales       map[uint64]schema.Sale
	ownership   []schema.OwnershipRecord
	collections []schema.CollectionEntry
	accounts    map[domain.Address]schema.Account
	kv          map[string]string
	nextRowID   uint64
}

func newMemState() *memState {
	return &memState{
		artists:  make(map[domain.Address]schema.Artist),
		artworks: make(map[uint64]schema.Artwork),
		sales:    make(map[uint64]schema.Sale),
		accounts: make(map[domain.Address]schema.Account),
		kv:       make(map[string]string),
	}
}

func (m *memState) clone() *memState {
	c := &memState{
		artists:     make(map[domain.Address]schema.Artist, len(m.artists)),
		artworks:    make(map[uint64]schema.Artwork, len(m.artworks)),
		sales:       make(map[uint64]schema.Sale, len(m.sales)),
		ownership:   append([]schema.OwnershipRecord(nil), m.ownership...),
		collections: append([]schema.CollectionEntry(nil), m.collections...),
		accounts:    make(map[domain.Address]schema.Account, len(m.accounts)),
		kv:          make(map[string]string, len(m.kv)),
		nextRowID:   m.nextRowID,
	}
	for k, v := range m.artists {
		c.artists[k] = v
	}
	for k, v := range m.artworks {
		c.artworks[k] = v
	}
	for k, v := range m.sales {
		c.sales[k] = v
	}
	for k, v := range m.accounts {
		c.accounts[k] = v
	}
	for k, v := range m.kv {
		c.kv[k] = v
	}
	return c
}

// memoryStore is an in-memory Store implementation with the same transaction
// semantics as the PostgreSQL store: writes inside WithinTransaction become
// visible only if fn returns nil. It backs the ledger engine tests and serves
// as a standalone single-process deployment mode.
type memoryStore struct {
	mu    sync.Mutex
	state *memState
	inTx  bool
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() Store {
	return &memoryStore{state: newMemState()}
}

// WithinTransaction runs fn against a snapshot of the state and swaps the
// snapshot in on success. The mutex additionally serializes transactions,
// mirroring the host ledger's one-at-a-time execution model.
func (s *memoryStore) WithinTransaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		// Nested transaction joins the outer one
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	txStore := &memoryStore{state: snapshot, inTx: true}
	if err := fn(txStore); err != nil {
		return err
	}

	s.state = snapshot
	return nil
}

func (s *memoryStore) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// GetArtist retrieves an artist by identity
func (s *memoryStore) GetArtist(ctx context.Context, address domain.Address) (*schema.Artist, error) {
	defer s.lock()()
	if artist, ok := s.state.artists[address]; ok {
		return &artist, nil
	}
	return nil, nil
}

// GetArtistForUpdate retrieves an artist; the transaction snapshot provides isolation
func (s *memoryStore) GetArtistForUpdate(ctx context.Context, address domain.Address) (*schema.Artist, error) {
	return s.GetArtist(ctx, address)
}

// CreateArtist inserts a new artist record
func (s *memoryStore) CreateArtist(ctx context.Context, artist *schema.Artist) error {
	defer s.lock()()
	if _, ok := s.state.artists[artist.Address]; ok {
		return fmt.Errorf("artist %s already exists", artist.Address)
	}
	s.state.artists[artist.Address] = *artist
	return nil
}

// SaveArtist persists changes to an existing artist record
func (s *memoryStore) SaveArtist(ctx context.Context, artist *schema.Artist) error {
	defer s.lock()()
	s.state.artists[artist.Address] = *artist
	return nil
}

// CountArtists returns the number of registered artists
func (s *memoryStore) CountArtists(ctx context.Context) (uint64, error) {
	defer s.lock()()
	return uint64(len(s.state.artists)), nil
}

// GetArtwork retrieves an artwork by token ID
func (s *memoryStore) GetArtwork(ctx context.Context, tokenID uint64) (*schema.Artwork, error) {
	defer s.lock()()
	if artwork, ok := s.state.artworks[tokenID]; ok {
		return &artwork, nil
	}
	return nil, nil
}

// GetArtworkForUpdate retrieves an artwork; the transaction snapshot provides isolation
func (s *memoryStore) GetArtworkForUpdate(ctx context.Context, tokenID uint64) (*schema.Artwork, error) {
	return s.GetArtwork(ctx, tokenID)
}

// CreateArtwork inserts a new artwork record
func (s *memoryStore) CreateArtwork(ctx context.Context, artwork *schema.Artwork) error {
	defer s.lock()()
	if _, ok := s.state.artworks[artwork.TokenID]; ok {
		return fmt.Errorf("artwork %d already exists", artwork.TokenID)
	}
	s.state.artworks[artwork.TokenID] = *artwork
	return nil
}

// SaveArtwork persists changes to an existing artwork record
func (s *memoryStore) SaveArtwork(ctx context.Context, artwork *schema.Artwork) error {
	defer s.lock()()
	s.state.artworks[artwork.TokenID] = *artwork
	return nil
}

// GetArtworksByArtist returns the artworks created by an identity, oldest first
func (s *memoryStore) GetArtworksByArtist(ctx context.Context, artist domain.Address) ([]schema.Artwork, error) {
	defer s.lock()()
	var artworks []schema.Artwork
	// Token IDs are dense from 1, so ascending iteration is chronological
	for tokenID := uint64(1); tokenID <= uint64(len(s.state.artworks)); tokenID++ {
		if artwork, ok := s.state.artworks[tokenID]; ok && artwork.Artist == artist {
			artworks = append(artworks, artwork)
		}
	}
	return artworks, nil
}

// CountArtworks returns the number of minted artworks
func (s *memoryStore) CountArtworks(ctx context.Context) (uint64, error) {
	defer s.lock()()
	return uint64(len(s.state.artworks)), nil
}

// AppendOwnershipRecord appends to a token's chronological owner log
func (s *memoryStore) AppendOwnershipRecord(ctx context.Context, record *schema.OwnershipRecord) error {
	defer s.lock()()
	s.state.nextRowID++
	record.ID = s.state.nextRowID
	s.state.ownership = append(s.state.ownership, *record)
	return nil
}

// GetOwnershipHistory returns a token's owner log in chronological order
func (s *memoryStore) GetOwnershipHistory(ctx context.Context, tokenID uint64) ([]schema.OwnershipRecord, error) {
	defer s.lock()()
	var records []schema.OwnershipRecord
	for _, record := range s.state.ownership {
		if record.TokenID == tokenID {
			records = append(records, record)
		}
	}
	return records, nil
}

// AppendCollectionEntry appends to an identity's acquisition list
func (s *memoryStore) AppendCollectionEntry(ctx context.Context, entry *schema.CollectionEntry) error {
	defer s.lock()()
	s.state.nextRowID++
	entry.ID = s.state.nextRowID
	s.state.collections = append(s.state.collections, *entry)
	return nil
}

// GetCollection returns an identity's acquisitions in chronological order
func (s *memoryStore) GetCollection(ctx context.Context, collector domain.Address) ([]schema.CollectionEntry, error) {
	defer s.lock()()
	var entries []schema.CollectionEntry
	for _, entry := range s.state.collections {
		if entry.Collector == collector {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// CreateSale appends an immutable sale record
func (s *memoryStore) CreateSale(ctx context.Context, sale *schema.Sale) error {
	defer s.lock()()
	if _, ok := s.state.sales[sale.SaleID]; ok {
		return fmt.Errorf("sale %d already exists", sale.SaleID)
	}
	s.state.sales[sale.SaleID] = *sale
	return nil
}

// GetSale retrieves a sale by ID
func (s *memoryStore) GetSale(ctx context.Context, saleID uint64) (*schema.Sale, error) {
	defer s.lock()()
	if sale, ok := s.state.sales[saleID]; ok {
		return &sale, nil
	}
	return nil, nil
}

// GetSalesByToken returns a token's sales in chronological order
func (s *memoryStore) GetSalesByToken(ctx context.Context, tokenID uint64) ([]schema.Sale, error) {
	defer s.lock()()
	var sales []schema.Sale
	for saleID := uint64(1); saleID <= uint64(len(s.state.sales)); saleID++ {
		if sale, ok := s.state.sales[saleID]; ok && sale.TokenID == tokenID {
			sales = append(sales, sale)
		}
	}
	return sales, nil
}

// CountSales returns the number of completed sales
func (s *memoryStore) CountSales(ctx context.Context) (uint64, error) {
	defer s.lock()()
	return uint64(len(s.state.sales)), nil
}

// GetAccount retrieves a vault account
func (s *memoryStore) GetAccount(ctx context.Context, address domain.Address) (*schema.Account, error) {
	defer s.lock()()
	if account, ok := s.state.accounts[address]; ok {
		return &account, nil
	}
	return nil, nil
}

// CreditAccount adds to an account balance, creating the account if needed
func (s *memoryStore) CreditAccount(ctx context.Context, address domain.Address, amount uint64) error {
	defer s.lock()()
	account := s.state.accounts[address]
	account.Address = address
	account.Balance += amount
	s.state.accounts[address] = account
	return nil
}

// DebitAccount subtracts from an account balance
func (s *memoryStore) DebitAccount(ctx context.Context, address domain.Address, amount uint64) error {
	defer s.lock()()
	account, ok := s.state.accounts[address]
	if !ok || account.Balance < amount {
		return domain.ErrInsufficientFunds
	}
	account.Balance -= amount
	s.state.accounts[address] = account
	return nil
}

// NextTokenID allocates the next sequential token ID
func (s *memoryStore) NextTokenID(ctx context.Context) (uint64, error) {
	return s.nextCounter(kvTokenCounter)
}

// NextSaleID allocates the next sequential sale ID
func (s *memoryStore) NextSaleID(ctx context.Context) (uint64, error) {
	return s.nextCounter(kvSaleCounter)
}

func (s *memoryStore) nextCounter(key string) (uint64, error) {
	defer s.lock()()
	var current uint64
	if value, ok := s.state.kv[key]; ok {
		if _, err := fmt.Sscanf(value, "%d", &current); err != nil {
			return 0, fmt.Errorf("failed to parse counter %s: %w", key, err)
		}
	}
	next := current + 1
	s.state.kv[key] = fmt.Sprintf("%d", next)
	return next, nil
}

// EnsurePlatformState seeds the platform owner and fee percentage if absent
func (s *memoryStore) EnsurePlatformState(ctx context.Context, owner domain.Address, feePct uint64) error {
	defer s.lock()()
	if _, ok := s.state.kv[kvPlatformOwner]; !ok {
		s.state.kv[kvPlatformOwner] = owner.String()
	}
	if _, ok := s.state.kv[kvPlatformFee]; !ok {
		s.state.kv[kvPlatformFee] = fmt.Sprintf("%d", feePct)
	}
	if _, ok := s.state.kv[kvTradingVolume]; !ok {
		s.state.kv[kvTradingVolume] = "0"
	}
	return nil
}

// GetPlatformFeePct returns the current platform fee percentage
func (s *memoryStore) GetPlatformFeePct(ctx context.Context) (uint64, error) {
	defer s.lock()()
	value, ok := s.state.kv[kvPlatformFee]
	if !ok {
		return 0, fmt.Errorf("platform fee not initialized")
	}
	var pct uint64
	if _, err := fmt.Sscanf(value, "%d", &pct); err != nil {
		return 0, fmt.Errorf("failed to parse platform fee: %w", err)
	}
	return pct, nil
}

// SetPlatformFeePct updates the platform fee percentage
func (s *memoryStore) SetPlatformFeePct(ctx context.Context, pct uint64) error {
	defer s.lock()()
	s.state.kv[kvPlatformFee] = fmt.Sprintf("%d", pct)
	return nil
}

// GetPlatformOwner returns the platform administrator identity
func (s *memoryStore) GetPlatformOwner(ctx context.Context) (domain.Address, error) {
	defer s.lock()()
	value, ok := s.state.kv[kvPlatformOwner]
	if !ok {
		return "", fmt.Errorf("platform owner not initialized")
	}
	return domain.Address(value), nil
}

// SetPlatformOwner updates the platform administrator identity
func (s *memoryStore) SetPlatformOwner(ctx context.Context, owner domain.Address) error {
	defer s.lock()()
	s.state.kv[kvPlatformOwner] = owner.String()
	return nil
}

// AddTradingVolume accumulates settled sale value into the running total
func (s *memoryStore) AddTradingVolume(ctx context.Context, amount uint64) error {
	defer s.lock()()
	var current uint64
	if value, ok := s.state.kv[kvTradingVolume]; ok {
		if _, err := fmt.Sscanf(value, "%d", &current); err != nil {
			return fmt.Errorf("failed to parse trading volume: %w", err)
		}
	}
	s.state.kv[kvTradingVolume] = fmt.Sprintf("%d", current+amount)
	return nil
}

// GetTradingVolume returns the cumulative settled sale value
func (s *memoryStore) GetTradingVolume(ctx context.Context) (uint64, error) {
	defer s.lock()()
	value, ok := s.state.kv[kvTradingVolume]
	if !ok {
		return 0, nil
	}
	var volume uint64
	if _, err := fmt.Sscanf(value, "%d", &volume); err != nil {
		return 0, fmt.Errorf("failed to parse trading volume: %w", err)
	}
	return volume, nil
}
