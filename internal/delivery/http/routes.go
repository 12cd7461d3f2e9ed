package http

import (
	"github.com/gin-gonic/gin"
	"github.com/shopsense/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/search", handler.Search)

		items := v1.Group("/items")
		{
			items.POST("/extract", handler.ExtractItems)
			items.POST("/parse", handler.ParseItems)
		}

		offers := v1.Group("/offers")
		{
			offers.POST("/resolve", handler.ResolveLink)
			offers.POST("/explain", handler.Explain)
		}
	}

	return router
}
