package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/api/handlers"
	"github.com/storekeep/adminapi/internal/api/middleware"
	"github.com/storekeep/adminapi/internal/catalog"
	"github.com/storekeep/adminapi/internal/config"
	"github.com/storekeep/adminapi/internal/sale"
	"github.com/storekeep/adminapi/internal/session"
	"github.com/storekeep/adminapi/internal/upstream"
)

// Dependencies bundles everything the router needs wired up.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Upstream *upstream.Client
	Catalog  *catalog.Service
	Sessions session.Store
	Drafts   *sale.Manager
}

// NewRouter creates and configures the Gin router
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	limiter := middleware.NewSessionRateLimiter(cfg.RateLimit)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Public auth routes (rate limited per client IP)
		authRoutes := v1.Group("/auth")
		authRoutes.Use(limiter.Middleware())
		{
			authRoutes.POST("/login", handlers.HandleLogin(deps.Upstream, deps.Sessions, cfg.Session, logger))
			authRoutes.POST("/register", handlers.HandleRegister(deps.Upstream, deps.Sessions, cfg.Session, logger))
		}

		// Everything else requires a live session
		authed := v1.Group("")
		authed.Use(middleware.SessionAuth(deps.Sessions, cfg.Session.CookieName, logger))
		authed.Use(limiter.Middleware())
		{
			authed.POST("/auth/logout", handlers.HandleLogout(deps.Sessions, deps.Drafts, cfg.Session, logger))
			authed.GET("/auth/me", handlers.HandleMe())

			authed.GET("/products", handlers.HandleListProducts(deps.Catalog, logger))

			authed.POST("/drafts", handlers.HandleOpenDraft(deps.Drafts))
			authed.GET("/drafts/current", handlers.HandleGetDraft(deps.Drafts))
			authed.PUT("/drafts/current/customer", handlers.HandleUpdateCustomer(deps.Drafts))
			authed.POST("/drafts/current/items", handlers.HandleAddItem(deps.Drafts))
			authed.DELETE("/drafts/current/items/:index", handlers.HandleRemoveItem(deps.Drafts))
			authed.PATCH("/drafts/current/items/:index", handlers.HandleUpdateItem(deps.Drafts))
			authed.GET("/drafts/current/totals", handlers.HandleTotals(deps.Drafts))
			authed.POST("/drafts/current/submit", handlers.HandleSubmit(deps.Drafts, logger))

			authed.GET("/sales", handlers.HandleListSales(deps.Upstream, logger))
			authed.PATCH("/sales/:id/status", handlers.HandleUpdateSaleStatus(deps.Upstream, logger))

			authed.GET("/invoices", handlers.HandleListInvoices(deps.Upstream, logger))
			authed.PATCH("/invoices/:id/status", handlers.HandleUpdateInvoiceStatus(deps.Upstream, logger))
			authed.GET("/invoices/:id/pdf", handlers.HandleDownloadInvoicePDF(deps.Upstream, logger))

			authed.GET("/reports/summary", handlers.HandleSummary(deps.Upstream, logger))
			authed.GET("/reports/chart", handlers.HandleChart(deps.Upstream, logger))
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
