package main

import (
	"fmt"
	"net/http"
	"os"

	"spendly/internal/config"
	"spendly/internal/database"
	"spendly/internal/handlers"
	"spendly/internal/logger"
	"spendly/internal/middleware"
	"spendly/internal/services"
	"spendly/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Spendly API
// @version         1.0
// @description     Spendly is a personal-finance tracking API: users, sessions, spending categories, and expense records with per-user ownership and summaries.

// @host      localhost:3000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Configuration is a hard startup requirement: a missing port,
	// database URL, or JWT secret must stop the process here.
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(appConfig.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	expenseService := services.NewExpenseService(db, categoryService)

	// Handlers
	userHandler := handlers.NewUserHandler(userService)
	sessionHandler := handlers.NewSessionHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	expenseHandler := handlers.NewExpenseHandler(expenseService, userService)

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
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	router.POST("/user", userHandler.Register)
	router.GET("/users", userHandler.GetUsers)
	router.POST("/session", sessionHandler.Login)
	router.POST("/session/google", sessionHandler.GoogleLogin)
	router.POST("/categories", categoryHandler.CreateCategory)
	router.GET("/categories", categoryHandler.GetCategories)
	router.GET("/expenses", expenseHandler.GetExpenses)
	router.GET("/expenses/user/:userId", expenseHandler.GetUserExpenses)

	// Protected routes: everything that mutates expenses or reads them
	// as the caller goes through the bearer guard.
	protected := router.Group("/")
	protected.Use(middleware.Auth(userService))
	protected.POST("/expenses", expenseHandler.CreateExpense)
	protected.GET("/expenses/me", expenseHandler.GetOwnExpenses)
	protected.PUT("/expenses/:expenseId", expenseHandler.UpdateExpense)
	// Single catch-all: covers DELETE /expenses/:expenseId and
	// DELETE /expenses/me/all, which cannot coexist as separate routes.
	protected.DELETE("/expenses/*expensePath", expenseHandler.DeleteDispatch)

	log.Infof("Starting Spendly API server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
