package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"psxlens/internal/config"
	"psxlens/internal/database"
	"psxlens/internal/handlers"
	"psxlens/internal/logger"
	"psxlens/internal/middleware"
	"psxlens/internal/scraper"
	"psxlens/internal/services"
	"psxlens/internal/validator"
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
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Open the local cache store and create its tables
	dbManager, err := database.NewManager(appConfig.CacheDBPath)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate cache database: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize the PSX scraper and services
	db := dbManager.DB()
	psxClient := scraper.New(appConfig)
	analysisService := services.NewAnalysisService(db, psxClient, appConfig.SnapshotTTL)
	stockListService := services.NewStockListService(db, psxClient, appConfig.StockListTTL)

	// Initialize handlers
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	stockListHandler := handlers.NewStockListHandler(stockListService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	allowedOrigins := make(map[string]bool, len(appConfig.AllowedOrigins))
	for _, origin := range appConfig.AllowedOrigins {
		allowedOrigins[origin] = true
	}
	router.Use(func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

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

	// API routes
	api := router.Group("/api")

	// Stock list (served from cache most of the time)
	api.GET("/stocks", stockListHandler.GetStocks)

	// Scraping routes, rate limited per client IP to protect PSX
	scraping := api.Group("/")
	scraping.Use(middleware.RateLimit(appConfig.RateLimitPerMin, appConfig.RateLimitBurst))
	scraping.POST("/analyze", analysisHandler.Analyze)
	scraping.POST("/compare", analysisHandler.Compare)

	log.Infof("Starting psxlens server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
