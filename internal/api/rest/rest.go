package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/gitcoinco/passport-scorer/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth)
	router.GET("/health", handler.HealthCheck)

	registry := router.Group("/registry")
	{
		// Passport submission (requires authentication)
		registry.POST("/submit-passport", middleware.Auth(authCfg), handler.SubmitPassport)

		// Community score listing (public read access)
		registry.GET("/score/:scorer_id", handler.ListScores)

		// Score history (public read access); registered before the address
		// route so "history" never binds as an address
		registry.GET("/score/:scorer_id/history", handler.GetScoreHistory)

		// Single score lookup (requires authentication)
		registry.GET("/score/:scorer_id/:address", middleware.Auth(authCfg), handler.GetScore)
	}
}
