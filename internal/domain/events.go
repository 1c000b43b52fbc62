package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// EventType identifies a marketplace ledger event
type EventType string

const (
	EventArtistRegistered    EventType = "artist.registered"
	EventArtistVerified      EventType = "artist.verified"
	EventArtworkMinted       EventType = "artwork.minted"
	EventArtworkListed       EventType = "artwork.listed"
	EventArtworkUnlisted     EventType = "artwork.unlisted"
	EventArtworkPriceUpdated EventType = "artwork.price_updated"
	EventArtworkPurchased    EventType = "artwork.purchased"
	EventRoyaltyPaid         EventType = "artwork.royalty_paid"
	EventFeesWithdrawn       EventType = "platform.fees_withdrawn"
	EventOwnershipChanged    EventType = "platform.ownership_changed"
)

// Event is a notification emitted after a ledger operation commits.
// Events are advisory only: the ledger tables are the source of truth and an
// event is never emitted for an operation that rolled back.
type Event struct {
	ID        string    `json:"id"` // ULID, monotonic within a process
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// NewEvent creates an event with a fresh ULID and the current time
func NewEvent(eventType EventType, data any) *Event {
	return &Event{
		ID:        ulid.Make().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ArtistEventData is the payload for artist.registered and artist.verified
type ArtistEventData struct {
	Address          Address `json:"address"`
	ProfileReference string  `json:"profile_reference,omitempty"`
	FeePaid          uint64  `json:"fee_paid,omitempty"`
}

// ArtworkEventData is the payload for artwork lifecycle events
type ArtworkEventData struct {
	TokenID uint64  `json:"token_id"`
	Artist  Address `json:"artist,omitempty"`
	Owner   Address `json:"owner,omitempty"`
	Price   uint64  `json:"price,omitempty"`
}

// SaleEventData is the payload for artwork.purchased
type SaleEventData struct {
	SaleID          uint64  `json:"sale_id"`
	TokenID         uint64  `json:"token_id"`
	Seller          Address `json:"seller"`
	Buyer           Address `json:"buyer"`
	Price           uint64  `json:"price"`
	PlatformFee     uint64  `json:"platform_fee"`
	RoyaltyFee      uint64  `json:"royalty_fee"`
	SellerAmount    uint64  `json:"seller_amount"`
	IsSecondarySale bool    `json:"is_secondary_sale"`
}

// PlatformEventData is the payload for platform administration events
type PlatformEventData struct {
	Owner  Address `json:"owner"`
	Amount uint64  `json:"amount,omitempty"`
}

// RoyaltyEventData is the payload for artwork.royalty_paid
type RoyaltyEventData struct {
	TokenID uint64  `json:"token_id"`
	Artist  Address `json:"artist"`
	Amount  uint64  `json:"amount"`
}
