package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	directoryport "github.com/amirhossein-jamali/account-opening-service/internal/domain/port/directory"
	accountUseCase "github.com/amirhossein-jamali/account-opening-service/internal/domain/usecase/account"
	directoryUseCase "github.com/amirhossein-jamali/account-opening-service/internal/domain/usecase/directory"

	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/database/migration"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/directory"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/repository"
	timeProvider "github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/account-opening-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)

	// Setup database configuration
	dbConfig := database.CreateConfigFromViperConfig(cfg)

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	dbManager := database.NewManager(dbConfig, appLogger, tp)
	if _, err := dbManager.Connect(); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer dbManager.Close()

	// Run migrations. MigrateAll is idempotent, so transient startup
	// failures while the database is still coming up are retried.
	migrationMgr := migration.NewMigrationManagerWithTimeProvider(dbManager.DB(), appLogger, tp)
	err = database.RetryOnTransientError(context.Background(), database.DefaultRetryConfig(), func() error {
		return migrationMgr.MigrateAll()
	}, appLogger)
	if err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Seed demo data for environments without a reachable directory
	if cfg.Seed.Enabled {
		userRepo := repository.NewUserRepository(dbManager.DB(), tp, appLogger)
		if err := migration.CreateSeedUsers(context.Background(), userRepo, tp); err != nil {
			appLogger.Error("Failed to create seed users", map[string]any{
				"error": err.Error(),
			})
		}

		accountRepo := repository.NewAccountRepository(dbManager.DB(), appLogger)
		if err := migration.CreateSeedAccounts(context.Background(), accountRepo, tp); err != nil {
			appLogger.Error("Failed to create seed accounts", map[string]any{
				"error": err.Error(),
			})
		}
	}

	// Unit of work (transaction manager)
	uow := database.NewUnitOfWork(dbManager.DB(), appLogger, tp)

	// Directory gateway, optionally wrapped with a Redis cache
	directoryConfig := directory.Config{
		BaseURL: cfg.Directory.BaseURL,
		APIKey:  cfg.Directory.APIKey,
		Timeout: cfg.Directory.Timeout,
	}
	if err := directoryConfig.Validate(); err != nil {
		appLogger.Warn("Directory client is not fully configured, lookups will fail", map[string]any{
			"error": err.Error(),
		})
	}
	var directoryGateway directoryport.Gateway = directory.NewClient(directoryConfig, appLogger)

	if cfg.Redis.Enabled {
		rdb, err := cache.NewClient(cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, appLogger)
		if err != nil {
			appLogger.Warn("Redis unavailable, directory lookups will not be cached", map[string]any{
				"error": err.Error(),
			})
		} else {
			defer rdb.Close()
			directoryGateway = directory.NewCachedGateway(rdb, cfg.Redis.TTL, directoryGateway, appLogger)
		}
	}

	// Initialize use cases
	accountService := accountUseCase.NewAccountService(uow, tp, appLogger)
	directoryService := directoryUseCase.NewDirectoryService(directoryGateway, appLogger)

	// Initialize API handlers
	accountHandler := handler.NewAccountHandler(accountService, appLogger)
	directoryHandler := handler.NewDirectoryHandler(directoryService, appLogger)
	healthHandler := handler.NewHealthHandler(dbManager, appLogger)

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, accountHandler, directoryHandler, healthHandler)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration. The sqlite driver only needs the
	// database path, so the server settings are checked for postgres only.
	if cfg.Database.Driver != "sqlite" {
		if cfg.Database.Host == "" {
			// In production, check if environment variable exists
			if cfg.Environment == config.Production && os.Getenv("AO_DB_HOST") == "" {
				missingConfigs = append(missingConfigs, "database.host (or AO_DB_HOST environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.host")
			}
		}

		if cfg.Database.Port == "" {
			if cfg.Environment == config.Production && os.Getenv("AO_DB_PORT") == "" {
				missingConfigs = append(missingConfigs, "database.port (or AO_DB_PORT environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.port")
			}
		}

		if cfg.Database.Username == "" {
			if cfg.Environment == config.Production && os.Getenv("AO_DB_USERNAME") == "" {
				missingConfigs = append(missingConfigs, "database.username (or AO_DB_USERNAME environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.username")
			}
		}

		if cfg.Database.Password == "" {
			if cfg.Environment == config.Production && os.Getenv("AO_DB_PASSWORD") == "" {
				missingConfigs = append(missingConfigs, "database.password (or AO_DB_PASSWORD environment variable)")
			} else if cfg.Environment != config.Production {
				missingConfigs = append(missingConfigs, "database.password")
			}
		}
	}

	if cfg.Database.Database == "" {
		if cfg.Environment == config.Production && os.Getenv("AO_DB_NAME") == "" {
			missingConfigs = append(missingConfigs, "database.database (or AO_DB_NAME environment variable)")
		} else if cfg.Environment != config.Production {
			missingConfigs = append(missingConfigs, "database.database")
		}
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	// Environment should be set with a valid value
	if cfg.Environment == "" {
		missingConfigs = append(missingConfigs, "environment")
	} else if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Logger configuration
	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.Environment == config.Production {
		var warnings []string

		// Check database security settings
		if strings.ToLower(cfg.Database.SSLMode) != "require" && strings.ToLower(cfg.Database.SSLMode) != "verify-ca" && strings.ToLower(cfg.Database.SSLMode) != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		// Check timeout settings
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if cfg.Server.WriteTimeout < 5*time.Second {
			warnings = append(warnings, "server.writeTimeout is too low for production")
		}

		if cfg.Directory.BaseURL == "" {
			warnings = append(warnings, "directory.baseUrl is empty, the user picker will have no data source")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
