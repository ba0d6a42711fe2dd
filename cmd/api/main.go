package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stockfolio/internal/cache"
	"stockfolio/internal/config"
	"stockfolio/internal/database"
	_ "stockfolio/internal/docs" // Import swagger docs
	"stockfolio/internal/handlers"
	"stockfolio/internal/logger"
	"stockfolio/internal/middleware"
	"stockfolio/internal/services"
	"stockfolio/internal/validator"
)

// @title           Stockfolio API
// @version         1.0
// @description     Stockfolio lets users browse a stock catalog, discuss stocks in comments, and track a personal portfolio.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

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

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	stockService := services.NewStockService(db)

	// Wrap the catalog in a Redis cache when configured
	if rdb := cache.NewRedisClient(appConfig.RedisAddr, appConfig.RedisPassword); rdb != nil {
		log.Infof("Catalog caching enabled via Redis at %s", appConfig.RedisAddr)
		stockService = cache.NewCachingStockService(rdb, appConfig.CacheTTL, stockService, "stocks")
	}

	commentService := services.NewCommentService(db)
	portfolioService := services.NewPortfolioService(db, stockService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	stockHandler := handlers.NewStockHandler(stockService)
	commentHandler := handlers.NewCommentHandler(commentService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)

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

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Stock catalog routes
	stocks := protected.Group("/stocks")
	stocks.GET("", stockHandler.ListStocks)
	stocks.GET("/:id", stockHandler.GetStock)
	stocks.POST("", stockHandler.CreateStock)
	stocks.PUT("/:id", stockHandler.UpdateStock)
	stocks.DELETE("/:id", stockHandler.DeleteStock)

	// Comment routes
	comments := protected.Group("/comments")
	comments.GET("", commentHandler.ListComments)
	comments.GET("/:id", commentHandler.GetComment)
	comments.POST("", commentHandler.CreateComment)
	comments.PUT("/:id", commentHandler.UpdateComment)
	comments.DELETE("/:id", commentHandler.DeleteComment)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.GET("", portfolioHandler.GetUserPortfolio)
	portfolio.POST("", portfolioHandler.AddToPortfolio)

	log.Infof("Starting Stockfolio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
