package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"stockview/internal/config"
	"stockview/internal/database"
	"stockview/internal/handlers"
	"stockview/internal/logger"
	"stockview/internal/market"
	"stockview/internal/middleware"
	"stockview/internal/services"
	"stockview/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.MarketAPIKey == "" {
		log.Warn("MARKET_API_KEY is not set; external stock retrieval will fail upstream")
	}

	// Register custom binding validators
	validator.Register()

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Outbound market-data client with a finite timeout
	marketClient := market.NewClient(cfg.MarketBaseURL, cfg.MarketAPIKey, &http.Client{Timeout: cfg.MarketTimeout})

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	stockService := services.NewStockService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService, cfg)
	stockHandler := handlers.NewStockHandler(stockService, auditService)
	marketHandler := handlers.NewMarketHandler(marketClient)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Stock routes
	stocks := protected.Group("/stocks")
	stocks.GET("", stockHandler.ListStocks)
	stocks.POST("", stockHandler.CreateStock)
	stocks.GET("/:name", stockHandler.GetStock)
	stocks.PUT("/:name", stockHandler.UpdateStock)
	stocks.DELETE("/:name", stockHandler.DeleteStock)

	// External market-data proxy
	protected.GET("/retrieve-external-stocks", marketHandler.RetrieveExternalStocks)

	log.Infof("Starting Stockview backend server on port %s", cfg.Port)
	return router.Run(":" + cfg.Port)
}
