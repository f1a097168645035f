package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lnprasad/invoice-api/internal/application/service"
	"github.com/lnprasad/invoice-api/internal/config"
	"github.com/lnprasad/invoice-api/internal/infrastructure/database"
	"github.com/lnprasad/invoice-api/internal/infrastructure/repository"
	"github.com/lnprasad/invoice-api/internal/presentation/http/handler"
	"github.com/lnprasad/invoice-api/internal/presentation/http/routes"
	"github.com/lnprasad/invoice-api/pkg/logger"
	"github.com/lnprasad/invoice-api/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync() //nolint:errcheck

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		appLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Seed the default passkey on first boot
	if err := database.SeedDefaultPasskey(db, cfg.Auth.DefaultPasskey); err != nil {
		appLogger.Warn("Failed to seed default passkey", zap.Error(err))
	}

	// Initialize session manager
	sessions := utils.NewSessionManager(cfg.Auth.JWTSecret, cfg.Auth.SessionExpiry)

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	passkeyRepo := repository.NewPasskeyRepository(db)

	// Initialize services
	authService := service.NewAuthService(passkeyRepo, sessions, appLogger)
	invoiceService := service.NewInvoiceService(invoiceRepo, cfg.Invoice, appLogger)
	addressService := service.NewAddressService(addressRepo, appLogger)
	exportService := service.NewExportService(invoiceRepo, appLogger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Invoice: handler.NewInvoiceHandler(invoiceService, exportService),
		Address: handler.NewAddressHandler(addressService),
		Company: handler.NewCompanyHandler(),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Sessions: sessions,
		Cfg:      cfg,
		Logger:   appLogger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	appLogger.Info("Starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + port); err != nil {
		appLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
