package http

import (
	"github.com/gin-gonic/gin"

	"github.com/veggiekiosk/backend/config"
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
		v1.POST("/analyze", handler.AnalyzeImage)
		v1.GET("/vegetables", handler.ListVegetables)

		cart := v1.Group("/cart")
		{
			cart.POST("/items", handler.AddCartItem)
			cart.DELETE("/items/:id", handler.RemoveCartItem)
			cart.GET("/:sessionId/items", handler.ListCartItems)
			cart.GET("/:sessionId/total", handler.CartTotal)
			cart.DELETE("/:sessionId", handler.ClearCart)
		}

		v1.POST("/receipt/qr", handler.ReceiptQR)
	}

	return router
}
