package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/resto/backend/internal/application/alerting"
	"github.com/resto/backend/internal/application/orderinv"
	"github.com/resto/backend/internal/infrastructure/cache"
	"github.com/resto/backend/internal/infrastructure/config"
	"github.com/resto/backend/internal/infrastructure/event"
	"github.com/resto/backend/internal/infrastructure/logger"
	"github.com/resto/backend/internal/infrastructure/persistence"
	"github.com/resto/backend/internal/interfaces/http/handler"
	"github.com/resto/backend/internal/interfaces/http/middleware"
	"github.com/resto/backend/internal/interfaces/http/router"
)

//	@title			Resto Backend API
//	@version		1.0
//	@description	Restaurant operations backend: recipe-driven inventory accounting and stock alerts

//	@contact.name	API Support
//	@contact.url	https://github.com/resto/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Resto Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Run schema migrations
	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	_ = persistence.NewGormInventoryTransactionRepository(db.DB)
	recipeRepo := persistence.NewGormRecipeRepository(db.DB)
	menuRepo := persistence.NewGormMenuItemRepository(db.DB)

	// Initialize event bus and subscribe alert handlers
	eventBus := event.NewInMemoryEventBus(log)

	// Summary cache: Redis when enabled, otherwise per-process memory
	var summaryCache alerting.SummaryCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisSummaryCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		summaryCache = redisCache
		log.Info("Redis summary cache enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		summaryCache = cache.NewInMemorySummaryCache()
	}

	thresholdHandler := alerting.NewStockBelowThresholdHandler(log).WithCache(summaryCache)
	if cfg.Alerts.NotifierEnabled {
		thresholdHandler = thresholdHandler.WithNotifier(alerting.NewLoggingStockAlertNotifier(log))
	}
	eventBus.Subscribe(thresholdHandler)
	log.Info("Event handlers registered",
		zap.Strings("stock_below_threshold_events", thresholdHandler.EventTypes()),
	)

	// Initialize application services
	calculator := orderinv.NewRequirementCalculator(menuRepo, recipeRepo)
	checker := orderinv.NewAvailabilityChecker(calculator)
	scope := persistence.NewGormTransactionScope(db.DB)
	deductionService := orderinv.NewDeductionService(calculator, scope, productRepo).
		WithLogger(log)
	deductionService.SetEventPublisher(eventBus)

	alertService := alerting.NewAlertService(productRepo, log).
		WithCache(summaryCache).
		WithSummaryTTL(cfg.Alerts.SummaryCacheTTL)

	// Initialize HTTP handlers
	orderInventoryHandler := handler.NewOrderInventoryHandler(calculator, checker, deductionService)
	alertHandler := handler.NewAlertHandler(alertService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging can tag
	// entries, then security headers, CORS and the body size cap
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness and readiness probes outside API versioning
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Format(time.RFC3339)})
	})
	engine.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "database": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "database": "ok"})
	})

	// Setup API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(orderInventoryHandler).
		Register(alertHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
