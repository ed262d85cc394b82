package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LeonR92/kafka/internal/cache"
	"github.com/LeonR92/kafka/internal/config"
	"github.com/LeonR92/kafka/internal/events"
	"github.com/LeonR92/kafka/internal/handlers"
	"github.com/LeonR92/kafka/internal/repository"
	"github.com/LeonR92/kafka/pkg/logger"
	"github.com/LeonR92/kafka/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/LeonR92/kafka/docs" // Import docs for Swagger
)

// @title           Item Service API
// @version         1.0
// @description     CRUD API for items with Kafka change-event notifications

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @schemes   http
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("Starting item service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	appLogger.Info("Kafka configuration",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
		zap.String("client_id", cfg.KafkaClientID),
		zap.String("acks", cfg.KafkaAcks),
	)

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize item store. The schema is ensured before the server
	// accepts traffic.
	var repo repository.ItemRepository
	if cfg.DatabasePath != "" {
		sqliteRepo, err := repository.NewSQLiteItemRepository(cfg.DatabasePath)
		if err != nil {
			appLogger.Fatal("Failed to initialize database", zap.Error(err))
		}
		appLogger.Info("SQLite store initialized", zap.String("path", cfg.DatabasePath))
		repo = sqliteRepo
	} else {
		appLogger.Warn("Using in-memory store (DATABASE_PATH not configured)")
		repo = repository.NewInMemoryItemRepository()
	}
	defer repo.Close()

	// Initialize event publisher. An unreachable broker degrades to the
	// in-memory publisher rather than blocking startup; events are
	// best-effort either way.
	var publisher events.EventPublisher
	kafkaPublisher, err := events.NewKafkaEventPublisher(cfg, appLogger)
	if err != nil {
		appLogger.Warn("Failed to initialize Kafka publisher, events will not leave the process", zap.Error(err))
		publisher = events.NewEventPublisher(appLogger)
	} else {
		publisher = kafkaPublisher
	}
	defer publisher.Close()

	// Optional read cache
	var readCache cache.Cache
	if cfg.UseCache {
		readCache = cache.New(cfg, appLogger)
	} else {
		appLogger.Info("Read cache disabled (USE_CACHE=false)")
	}

	itemHandler := handlers.NewItemHandler(
		appLogger,
		repo,
		publisher,
		readCache,
		time.Duration(cfg.CacheTTL)*time.Second,
		cfg.WebDir,
	)

	// Initialize router
	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", healthCheck)
	router.GET("/order", itemHandler.ShowOrderForm)

	api := router.Group("/api")
	{
		api.GET("/get_items", itemHandler.GetItems)
		api.GET("/items/:id", itemHandler.GetItem)
		api.POST("/items", itemHandler.CreateItem)
		api.PUT("/items/:id", itemHandler.UpdateItem)
		api.DELETE("/items/:id", itemHandler.DeleteItem)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Tags         health
// @Produce      json
// @Success      200  {object}  handlers.HealthResponse
// @Router       /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
