package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lnprasad/invoice-api/internal/config"
	"github.com/lnprasad/invoice-api/internal/presentation/http/handler"
	"github.com/lnprasad/invoice-api/internal/presentation/http/middleware"
	"github.com/lnprasad/invoice-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Invoice *handler.InvoiceHandler
	Address *handler.AddressHandler
	Company *handler.CompanyHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Sessions *utils.SessionManager
	Cfg      *config.Config
	Logger   *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Protected routes (session required)
		protected := v1.Group("")
		protected.Use(middleware.SessionAuth(deps.Sessions))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerInvoiceRoutes(protected, h)
		registerAddressRoutes(protected, h)
		registerCompanyRoutes(protected, h)
	}

	return router
}

func registerInvoiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	invoices := protected.Group("/invoices")
	{
		invoices.GET("", h.Invoice.List)
		invoices.POST("", h.Invoice.Create)
		invoices.GET("/next-number", h.Invoice.NextNumber)
		invoices.GET("/export", h.Invoice.Export)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.GET("/:id/pdf", h.Invoice.PDF)
		invoices.GET("/:id/excel", h.Invoice.Excel)
	}
}

func registerAddressRoutes(protected *gin.RouterGroup, h *Handlers) {
	addresses := protected.Group("/addresses")
	{
		addresses.GET("", h.Address.List)
		addresses.POST("", h.Address.Create)
		addresses.DELETE("/:id", h.Address.Delete)
	}
}

func registerCompanyRoutes(protected *gin.RouterGroup, h *Handlers) {
	companies := protected.Group("/companies")
	{
		companies.GET("", h.Company.List)
		companies.GET("/:key", h.Company.Get)
	}
}
