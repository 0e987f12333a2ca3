package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/api/handlers"
	"github.com/matbakhapp/orderapi/internal/api/middleware"
	"github.com/matbakhapp/orderapi/internal/config"
	"github.com/matbakhapp/orderapi/internal/repository"
	"github.com/matbakhapp/orderapi/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	repos *repository.Repositories,
	carts *service.CartService,
	orders *service.OrderService,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Session-scoped cart and checkout routes
		sessionRoutes := v1.Group("")
		sessionRoutes.Use(middleware.SessionMiddleware())
		{
			sessionRoutes.GET("/cart", handlers.HandleGetCart(carts, logger))
			sessionRoutes.POST("/cart/items", handlers.HandleUpsertItem(carts, logger))
			sessionRoutes.POST("/cart/items/replace", handlers.HandleReplaceCart(carts, logger))
			sessionRoutes.DELETE("/cart", handlers.HandleClearCart(carts, logger))
			sessionRoutes.POST("/cart/promo", handlers.HandleApplyPromo(carts, logger))
			sessionRoutes.DELETE("/cart/promo", handlers.HandleRemovePromo(carts, logger))
			sessionRoutes.POST("/checkout", handlers.HandleCheckout(carts, orders, logger))
		}

		// Order projections
		v1.GET("/orders/:id", handlers.HandleGetOrder(repos, logger))
		v1.GET("/orders", handlers.HandleSearchOrders(repos, logger))

		// Admin routes (internal - gated by the deployment, not the core)
		adminRoutes := v1.Group("/admin")
		{
			adminRoutes.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(orders, logger))
			adminRoutes.GET("/orders", handlers.HandleListOrders(repos, logger))
		}
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
