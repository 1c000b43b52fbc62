package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace/internal/api/middleware"
	"github.com/feral-file/ff-marketplace/internal/api/rest/dto"
	"github.com/feral-file/ff-marketplace/internal/domain"
	"github.com/feral-file/ff-marketplace/internal/ledger"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// RegisterArtist registers the caller as an artist
	// POST /api/v1/artists
	RegisterArtist(c *gin.Context)

	// VerifyArtist verifies the calling artist against the verification fee
	// POST /api/v1/artists/verify
	VerifyArtist(c *gin.Context)

	// GetArtist retrieves an artist's stats
	// GET /api/v1/artists/:address
	GetArtist(c *gin.Context)

	// GetCreations lists the artworks created by an artist
	// GET /api/v1/artists/:address/creations
	GetCreations(c *gin.Context)

	// MintArtwork mints a new artwork for the caller
	// POST /api/v1/artworks
	MintArtwork(c *gin.Context)

	// GetArtwork retrieves a single artwork
	// GET /api/v1/artworks/:id
	GetArtwork(c *gin.Context)

	// GetOwnershipHistory lists a token's owners in order
	// GET /api/v1/artworks/:id/history
	GetOwnershipHistory(c *gin.Context)

	// GetSalesByToken lists a token's settled sales
	// GET /api/v1/artworks/:id/sales
	GetSalesByToken(c *gin.Context)

	// GetCurrentOwner reports a token's current owner
	// GET /api/v1/artworks/:id/owner
	GetCurrentOwner(c *gin.Context)

	// ListArtwork puts an owned artwork up for sale
	// POST /api/v1/artworks/:id/list
	ListArtwork(c *gin.Context)

	// UnlistArtwork takes an owned artwork off sale
	// POST /api/v1/artworks/:id/unlist
	UnlistArtwork(c *gin.Context)

	// UpdatePrice changes an owned, listed artwork's price
	// PUT /api/v1/artworks/:id/price
	UpdatePrice(c *gin.Context)

	// Purchase buys a listed artwork for the caller
	// POST /api/v1/artworks/:id/purchase
	Purchase(c *gin.Context)

	// GetSale retrieves a settled sale
	// GET /api/v1/sales/:id
	GetSale(c *gin.Context)

	// GetCollection lists an identity's acquisitions
	// GET /api/v1/accounts/:address/collection
	GetCollection(c *gin.Context)

	// GetBalance reports an identity's vault balance
	// GET /api/v1/accounts/:address/balance
	GetBalance(c *gin.Context)

	// Deposit funds the caller's vault account
	// POST /api/v1/accounts/deposit
	Deposit(c *gin.Context)

	// GetPlatformStats reports marketplace-wide aggregates
	// GET /api/v1/platform/stats
	GetPlatformStats(c *gin.Context)

	// SetPlatformFee updates the platform fee percentage (owner only)
	// PUT /api/v1/platform/fee
	SetPlatformFee(c *gin.Context)

	// WithdrawPlatformFees sweeps the treasury to the owner (owner only)
	// POST /api/v1/platform/withdraw
	WithdrawPlatformFees(c *gin.Context)

	// TransferOwnership hands the platform to a new owner (owner only)
	// POST /api/v1/platform/owner
	TransferOwnership(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine *ledger.Engine
}

// NewHandler creates a new REST API handler backed by the ledger engine
func NewHandler(engine *ledger.Engine) Handler {
	return &handler{engine: engine}
}

// caller extracts the authenticated account address from the JWT subject.
// ok is false when the response has already been written.
func caller(c *gin.Context) (domain.Address, bool) {
	subject := middleware.Subject(c)
	if subject == "" {
		respondBadRequest(c, "Caller identity is required", "authenticate with a JWT whose subject is an account address")
		return domain.ZeroAddress, false
	}
	addr := domain.Address(subject)
	if !addr.Valid() {
		respondBadRequest(c, "Invalid caller address", subject)
		return domain.ZeroAddress, false
	}
	return domain.NormalizeAddress(subject), true
}

// tokenIDParam parses the :id path parameter as a token or sale ID.
// ok is false when the response has already been written.
func tokenIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid ID", c.Param(name))
		return 0, false
	}
	return id, true
}

// addressParam parses the :address path parameter
func addressParam(c *gin.Context) (domain.Address, bool) {
	raw := c.Param("address")
	addr := domain.Address(raw)
	if !addr.Valid() {
		respondBadRequest(c, "Invalid address", raw)
		return domain.ZeroAddress, false
	}
	return domain.NormalizeAddress(raw), true
}

func (h *handler) RegisterArtist(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.RegisterArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	artist, err := h.engine.RegisterArtist(c.Request.Context(), addr, req.ProfileReference)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromArtist(artist))
}

func (h *handler) VerifyArtist(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.VerifyArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.engine.VerifyArtist(c.Request.Context(), addr, req.Value); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) GetArtist(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	artist, err := h.engine.GetArtist(c.Request.Context(), addr)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromArtist(artist))
}

func (h *handler) GetCreations(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	artworks, err := h.engine.GetCreations(c.Request.Context(), addr)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromArtworks(artworks))
}

func (h *handler) MintArtwork(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.MintArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	artwork, err := h.engine.MintArtwork(c.Request.Context(), addr, ledger.MintParams{
		Title:       req.Title,
		Description: req.Description,
		ContentHash: req.ContentHash,
		Price:       req.Price,
		RoyaltyPct:  req.RoyaltyPct,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromArtwork(artwork))
}

func (h *handler) GetArtwork(c *gin.Context) {
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	artwork, err := h.engine.GetArtwork(c.Request.Context(), tokenID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromArtwork(artwork))
}

func (h *handler) GetOwnershipHistory(c *gin.Context) {
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	history, err := h.engine.GetOwnershipHistory(c.Request.Context(), tokenID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromOwnershipHistory(history))
}

func (h *handler) GetSalesByToken(c *gin.Context) {
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	sales, err := h.engine.GetSalesByToken(c.Request.Context(), tokenID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSales(sales))
}

func (h *handler) GetCurrentOwner(c *gin.Context) {
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	owner, err := h.engine.CurrentOwner(c.Request.Context(), tokenID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token_id": tokenID, "owner": owner})
}

func (h *handler) ListArtwork(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.ListArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.engine.ListArtwork(c.Request.Context(), addr, tokenID, req.Price); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) UnlistArtwork(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.engine.UnlistArtwork(c.Request.Context(), addr, tokenID); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) UpdatePrice(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.engine.UpdatePrice(c.Request.Context(), addr, tokenID, req.Price); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) Purchase(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}
	tokenID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	sale, err := h.engine.Purchase(c.Request.Context(), addr, tokenID, req.Value)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromSale(sale))
}

func (h *handler) GetSale(c *gin.Context) {
	saleID, ok := tokenIDParam(c, "id")
	if !ok {
		return
	}

	sale, err := h.engine.GetSale(c.Request.Context(), saleID)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromSale(sale))
}

func (h *handler) GetCollection(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	collection, err := h.engine.GetCollection(c.Request.Context(), addr)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromCollection(collection))
}

func (h *handler) GetBalance(c *gin.Context) {
	addr, ok := addressParam(c)
	if !ok {
		return
	}

	balance, err := h.engine.Balance(c.Request.Context(), addr)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Address: addr, Balance: balance})
}

func (h *handler) Deposit(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.engine.Deposit(c.Request.Context(), addr, req.Amount); err != nil {
		respondDomainError(c, err)
		return
	}

	balance, err := h.engine.Balance(c.Request.Context(), addr)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{Address: addr, Balance: balance})
}

func (h *handler) GetPlatformStats(c *gin.Context) {
	stats, err := h.engine.GetPlatformStats(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handler) SetPlatformFee(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.SetPlatformFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	if err := h.engine.SetPlatformFee(c.Request.Context(), addr, req.FeePct); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) WithdrawPlatformFees(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	withdrawn, err := h.engine.WithdrawPlatformFees(c.Request.Context(), addr)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.WithdrawResponse{Withdrawn: withdrawn})
}

func (h *handler) TransferOwnership(c *gin.Context) {
	addr, ok := caller(c)
	if !ok {
		return
	}

	var req dto.TransferOwnershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	newOwner := domain.Address(req.NewOwner)
	if !newOwner.Valid() {
		respondBadRequest(c, "Invalid new owner address", req.NewOwner)
		return
	}

	if err := h.engine.TransferPlatformOwnership(c.Request.Context(), addr, domain.NormalizeAddress(req.NewOwner)); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
