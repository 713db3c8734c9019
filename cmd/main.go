package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/tesseract-hub/translation-api/internal/billing"
	"github.com/tesseract-hub/translation-api/internal/config"
	"github.com/tesseract-hub/translation-api/internal/engine"
	"github.com/tesseract-hub/translation-api/internal/handlers"
	"github.com/tesseract-hub/translation-api/internal/middleware"
	"github.com/tesseract-hub/translation-api/internal/models"
	"github.com/tesseract-hub/translation-api/internal/registry"
	"github.com/tesseract-hub/translation-api/internal/repository"
	"github.com/tesseract-hub/translation-api/internal/translatable"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	log := logger.WithField("service", "translation-api")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	// Set log level
	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	// Set Gin mode
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Load the model registry
	reg, err := registry.Load(cfg.Translation.ModelsFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load model registry")
	}
	log.WithField("models", reg.ModelNames()).Info("Model registry loaded")

	// Initialize database
	db, err := initDatabase(&cfg.Database, cfg.App.Environment)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize audit repository and recorder
	repo := repository.NewAuditRepository(db)
	recorder := billing.NewRecorder(repo, log)

	// Initialize Redis cache
	var cache *engine.TranslationCache
	if cfg.Translation.CacheEnabled {
		cache, err = engine.NewTranslationCache(
			cfg.Redis.Host,
			cfg.Redis.Port,
			cfg.Redis.Password,
			cfg.Redis.DB,
			cfg.Translation.CacheTTL,
			log,
		)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis cache, continuing without cache")
			cache = nil
		}
	}

	// Initialize the MT backend client
	backend := engine.NewBackendClient(
		cfg.Translation.BackendURL,
		cfg.Translation.BackendKey,
		log,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := backend.HealthCheck(ctx); err != nil {
		log.WithError(err).Warn("MT backend health check failed - service may not be available")
	} else {
		log.Info("MT backend connection verified")
	}
	cancel()

	translator := engine.New(reg, backend, cache, log)

	guard := translatable.SizeLimitGuard{
		Limit:         cfg.Translation.SizeLimit,
		AllowOverride: cfg.Translation.AllowSizeLimitOverride,
	}

	handler := handlers.NewTranslationHandler(
		reg,
		translator,
		backend,
		cache,
		guard,
		recorder,
		&cfg.Translation,
		log,
	)

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(
		cfg.Translation.RateLimit,
		cfg.Translation.RateLimitWindow,
	)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	// Health endpoints
	router.GET("/health", handler.Health)
	router.GET("/livez", handler.Livez)
	router.GET("/readyz", handler.Readyz)

	// API v2 routes
	v2 := router.Group("/api/v2", rateLimiter.Middleware())
	handler.RegisterRoutes(v2)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.WithField("addr", addr).Info("Starting translation API")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	// Close Redis connection
	if cache != nil {
		if err := cache.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis connection")
		}
	}

	log.Info("Server exited")
}

func initDatabase(cfg *config.DatabaseConfig, env string) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	logLevel := gormLogger.Silent
	if env != "production" {
		logLevel = gormLogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func runMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.AccessRecord{},
		&models.ContentRecord{},
	)
}
