package routes

import (
	coreport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	directoryHandler *handler.DirectoryHandler,
	healthHandler *handler.HealthHandler,
) {
	// Account routes; the paths follow the submitting form's conventions
	accountRoutes := router.Group("/Accounts")
	{
		// POST /Accounts/OpenAccount
		accountRoutes.POST("/OpenAccount", accountHandler.OpenAccount)

		// GET /Accounts/User/:userId
		accountRoutes.GET("/User/:userId", accountHandler.GetUserAccounts)
	}

	// GET /DirectoryUsers
	router.GET("/DirectoryUsers", directoryHandler.GetUsers)

	// GET /health
	router.GET("/health", healthHandler.Check)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
