package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-marketplace/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Read accessors (public)
		v1.GET("/artworks/:id", handler.GetArtwork)
		v1.GET("/artworks/:id/history", handler.GetOwnershipHistory)
		v1.GET("/artworks/:id/sales", handler.GetSalesByToken)
		v1.GET("/artworks/:id/owner", handler.GetCurrentOwner)
		v1.GET("/artists/:address", handler.GetArtist)
		v1.GET("/artists/:address/creations", handler.GetCreations)
		v1.GET("/accounts/:address/collection", handler.GetCollection)
		v1.GET("/accounts/:address/balance", handler.GetBalance)
		v1.GET("/sales/:id", handler.GetSale)
		v1.GET("/platform/stats", handler.GetPlatformStats)

		// Mutating operations require an authenticated caller identity
		authed := v1.Group("", middleware.Auth(authCfg))
		{
			authed.POST("/artists", handler.RegisterArtist)
			authed.POST("/artists/verify", handler.VerifyArtist)
			authed.POST("/artworks", handler.MintArtwork)
			authed.POST("/artworks/:id/list", handler.ListArtwork)
			authed.POST("/artworks/:id/unlist", handler.UnlistArtwork)
			authed.PUT("/artworks/:id/price", handler.UpdatePrice)
			authed.POST("/artworks/:id/purchase", handler.Purchase)
			authed.POST("/accounts/deposit", handler.Deposit)

			// Platform administration; the engine rejects callers that are
			// not the platform owner.
			authed.PUT("/platform/fee", handler.SetPlatformFee)
			authed.POST("/platform/withdraw", handler.WithdrawPlatformFees)
			authed.POST("/platform/owner", handler.TransferOwnership)
		}
	}
}
