package dto

import (
	"time"

	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/store/schema"
)

// RegisterArtistRequest is the payload for POST /artists
type RegisterArtistRequest struct {
	ProfileReference string `json:"profile_reference" binding:"required"`
}

// VerifyArtistRequest is the payload for POST /artists/verify.
// Value is the attached payment in base units.
type VerifyArtistRequest struct {
	Value uint64 `json:"value"`
}

// MintArtworkRequest is the payload for POST /artworks
type MintArtworkRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ContentHash string `json:"content_hash" binding:"required"`
	Price       uint64 `json:"price"`
	RoyaltyPct  uint64 `json:"royalty_pct"`
}

// ListArtworkRequest is the payload for POST /artworks/:id/list
type ListArtworkRequest struct {
	Price uint64 `json:"price"`
}

// UpdatePriceRequest is the payload for PUT /artworks/:id/price
type UpdatePriceRequest struct {
	Price uint64 `json:"price"`
}

// PurchaseRequest is the payload for POST /artworks/:id/purchase.
// Value is the attached payment in base units.
type PurchaseRequest struct {
	Value uint64 `json:"value"`
}

// DepositRequest is the payload for POST /accounts/deposit
type DepositRequest struct {
	Amount uint64 `json:"amount"`
}

// SetPlatformFeeRequest is the payload for PUT /platform/fee
type SetPlatformFeeRequest struct {
	FeePct uint64 `json:"fee_pct"`
}

// TransferOwnershipRequest is the payload for POST /platform/owner
type TransferOwnershipRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}

// ArtworkResponse represents an artwork record
type ArtworkResponse struct {
	TokenID      uint64         `json:"token_id"`
	Artist       domain.Address `json:"artist"`
	CurrentOwner domain.Address `json:"current_owner"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	ContentHash  string         `json:"content_hash"`
	Price        uint64         `json:"price"`
	RoyaltyPct   uint64         `json:"royalty_pct"`
	IsListed     bool           `json:"is_listed"`
	SalesCount   uint64         `json:"sales_count"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ArtistResponse represents an artist record
type ArtistResponse struct {
	Address          domain.Address `json:"address"`
	Verified         bool           `json:"verified"`
	ProfileReference string         `json:"profile_reference"`
	ArtworksCreated  uint64         `json:"artworks_created"`
	TotalEarnings    uint64         `json:"total_earnings"`
	Reputation       uint64         `json:"reputation"`
	RegisteredAt     time.Time      `json:"registered_at"`
}

// SaleResponse represents a settled sale
type SaleResponse struct {
	SaleID          uint64         `json:"sale_id"`
	TokenID         uint64         `json:"token_id"`
	Seller          domain.Address `json:"seller"`
	Buyer           domain.Address `json:"buyer"`
	Price           uint64         `json:"price"`
	PlatformFee     uint64         `json:"platform_fee"`
	RoyaltyFee      uint64         `json:"royalty_fee"`
	SellerAmount    uint64         `json:"seller_amount"`
	IsSecondarySale bool           `json:"is_secondary_sale"`
	Timestamp       time.Time      `json:"timestamp"`
}

// OwnershipRecordResponse is one entry of a token's owner history
type OwnershipRecordResponse struct {
	Owner      domain.Address `json:"owner"`
	AcquiredAt time.Time      `json:"acquired_at"`
}

// CollectionEntryResponse is one acquisition in an identity's collection
type CollectionEntryResponse struct {
	TokenID    uint64    `json:"token_id"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// BalanceResponse reports a vault account balance
type BalanceResponse struct {
	Address domain.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

// WithdrawResponse reports a completed platform fee withdrawal
type WithdrawResponse struct {
	Withdrawn uint64 `json:"withdrawn"`
}

// FromArtwork maps a schema artwork to its response shape
func FromArtwork(artwork *schema.Artwork) ArtworkResponse {
	return ArtworkResponse{
		TokenID:      artwork.TokenID,
		Artist:       artwork.Artist,
		CurrentOwner: artwork.CurrentOwner,
		Title:        artwork.Title,
		Description:  artwork.Description,
		ContentHash:  artwork.ContentHash,
		Price:        artwork.Price,
		RoyaltyPct:   artwork.RoyaltyPct,
		IsListed:     artwork.IsListed,
		SalesCount:   artwork.SalesCount,
		CreatedAt:    artwork.CreatedAt,
	}
}

// FromArtworks maps a slice of artworks
func FromArtworks(artworks []schema.Artwork) []ArtworkResponse {
	out := make([]ArtworkResponse, 0, len(artworks))
	for i := range artworks {
		out = append(out, FromArtwork(&artworks[i]))
	}
	return out
}

// FromArtist maps a schema artist to its response shape
func FromArtist(artist *schema.Artist) ArtistResponse {
	return ArtistResponse{
		Address:          artist.Address,
		Verified:         artist.Verified,
		ProfileReference: artist.ProfileReference,
		ArtworksCreated:  artist.ArtworksCreated,
		TotalEarnings:    artist.TotalEarnings,
		Reputation:       artist.Reputation,
		RegisteredAt:     artist.RegisteredAt,
	}
}

// FromSale maps a schema sale to its response shape
func FromSale(sale *schema.Sale) SaleResponse {
	return SaleResponse{
		SaleID:          sale.SaleID,
		TokenID:         sale.TokenID,
		Seller:          sale.Seller,
		Buyer:           sale.Buyer,
		Price:           sale.Price,
		PlatformFee:     sale.PlatformFee,
		RoyaltyFee:      sale.RoyaltyFee,
		SellerAmount:    sale.SellerAmount,
		IsSecondarySale: sale.IsSecondarySale,
		Timestamp:       sale.Timestamp,
	}
}

// FromSales maps a slice of sales
func FromSales(sales []schema.Sale) []SaleResponse {
	out := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, FromSale(&sales[i]))
	}
	return out
}

// FromOwnershipHistory maps a token's owner log
func FromOwnershipHistory(records []schema.OwnershipRecord) []OwnershipRecordResponse {
	out := make([]OwnershipRecordResponse, 0, len(records))
	for _, record := range records {
		out = append(out, OwnershipRecordResponse{
			Owner:      record.Owner,
			AcquiredAt: record.AcquiredAt,
		})
	}
	return out
}

// FromCollection maps an identity's acquisitions
func FromCollection(entries []schema.CollectionEntry) []CollectionEntryResponse {
	out := make([]CollectionEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, CollectionEntryResponse{
			TokenID:    entry.TokenID,
			AcquiredAt: entry.AcquiredAt,
		})
	}
	return out
}
