package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/nft-ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Read endpoints (public, side-effect-free)
		v1.GET("/supply", handler.GetSupply)
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/tokens", handler.ListTokens)
		v1.GET("/tokens/:id/events", handler.ListTokenEvents)
		v1.GET("/owners/:address/balance", handler.GetBalance)
		v1.GET("/interfaces/:id", handler.CheckInterface)

		// Mutation endpoints (require authentication)
		v1.POST("/tokens", middleware.Auth(authCfg), handler.Mint)
		v1.POST("/tokens/:id/transfer", middleware.Auth(authCfg), handler.Transfer)
		v1.POST("/tokens/:id/transfer-from", middleware.Auth(authCfg), handler.TransferFrom)
		v1.POST("/tokens/:id/approve", middleware.Auth(authCfg), handler.Approve)
	}
}
