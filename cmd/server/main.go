package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/velo-ui/knowledge/internal/api/handlers"
	"github.com/velo-ui/knowledge/internal/config"
	"github.com/velo-ui/knowledge/internal/database"
	"github.com/velo-ui/knowledge/internal/health"
	"github.com/velo-ui/knowledge/internal/middleware"
	"github.com/velo-ui/knowledge/internal/migration"
	"github.com/velo-ui/knowledge/internal/repository"
	"github.com/velo-ui/knowledge/internal/search"
	"github.com/velo-ui/knowledge/internal/validation"
	"github.com/velo-ui/knowledge/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting Velo UI knowledge server...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Configuration validation failed")
	}

	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	runner := migration.NewRunner(dbManager, logger)
	if err := runner.RunMigrations("migrations"); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)
	cache := database.NewCache(dbManager.Redis, logger)

	searchService := search.NewService(repoManager.Document, logger)
	validator := validation.NewValidator(logger)

	searchHandler := handlers.NewSearchHandler(searchService, repoManager, cache, logger)
	componentHandler := handlers.NewComponentHandler(repoManager, cache, logger)
	validateHandler := handlers.NewValidateHandler(validator, logger)
	healthChecker := health.NewHealthChecker(dbManager, repoManager.SystemHealth, logger)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.NewRateLimiter(120).RateLimit())

	api := router.Group("/api/v1")
	{
		api.POST("/search", searchHandler.HandleSearch)
		api.GET("/suggestions", searchHandler.HandleSuggestions)
		api.GET("/components/:name", componentHandler.HandleGetComponent)
		api.GET("/components/:name/guidance", componentHandler.HandleGetGuidance)
		api.POST("/validate", validateHandler.HandleValidate)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, utils.CodeNotFound, "Route not found", nil)
	})

	router.GET("/health", func(c *gin.Context) {
		overall := healthChecker.CheckAll()
		code := http.StatusOK
		if overall.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, overall)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
	logger.Info("Server stopped")
}
