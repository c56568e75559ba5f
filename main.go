// Package main provides the main entry point for the Saj Tem backend
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"github.com/sajtem/sajtem-backend/app/handlers"
	"github.com/sajtem/sajtem-backend/app/middleware"
	"github.com/sajtem/sajtem-backend/app/router"
	"github.com/sajtem/sajtem-backend/app/scheduler"
	"github.com/sajtem/sajtem-backend/app/services"
	businessflow "github.com/sajtem/sajtem-backend/business_flow"
	"github.com/sajtem/sajtem-backend/config"
	"github.com/sajtem/sajtem-backend/repository"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Application represents the main application structure
type Application struct {
	router    *router.FiberRouter
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting Saj Tem backend...")

	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	for _, fn := range app.stopFuncs {
		fn()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the standard logger to a size-rotated file when one
// is configured. Stdout stays attached for container setups.
func setupLogging(cfg config.LoggingConfig) {
	if cfg.FilePath == "" {
		return
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, rotator))
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	// TranslateError maps driver duplicate-key errors onto
	// gorm.ErrDuplicatedKey, which the short code collision retry relies on
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Redis client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established to %s (db=%d)", cfg.RedisURL, cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor starts a background goroutine that periodically pings Redis
// to detect connectivity issues. The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	if client == nil {
		return func() {}
	}
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(context.Background(), 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeApplication initializes the main application components
func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}

	cancel := startCacheHealthMonitor(context.Background(), rc, cfg.Cache.CleanupInterval)
	stopFuncs = append(stopFuncs, cancel)

	// Initialize repositories
	shortURLRepo := repository.NewShortURLRepository(db)
	shortURLClickRepo := repository.NewShortURLClickRepository(db)
	planoRepo := repository.NewPlanoRepository(db)
	pagamentoRepo := repository.NewPagamentoRepository(db)
	securityLogRepo := repository.NewSecurityLogRepository(db)
	rateLimitLogRepo := repository.NewRateLimitLogRepository(db)

	if cfg.Maintenance.Enabled {
		maintenance := scheduler.NewMaintenanceScheduler(shortURLRepo, rateLimitLogRepo, cfg.Maintenance)
		stopFuncs = append(stopFuncs, maintenance.Start(context.Background()))
	}

	// Initialize external service clients
	paymentGateway := services.NewMercadoPagoClient(cfg.MercadoPago.BaseURL, cfg.MercadoPago.AccessToken, cfg.MercadoPago.Timeout)
	emailProvider := services.NewResendClient(cfg.Email.BaseURL, cfg.Email.APIKey, cfg.Email.FromAddress, cfg.Email.Timeout)
	weatherService := services.NewWeatherAPIClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout)

	// Initialize flows
	shortURLFlow := businessflow.NewShortURLFlow(shortURLRepo, cfg.ShortLink)
	shortURLVisitFlow := businessflow.NewShortURLVisitFlow(shortURLRepo, shortURLClickRepo, rc, &cfg.Cache)
	adminShortURLFlow := businessflow.NewAdminShortURLFlow(shortURLRepo, shortURLClickRepo)
	paymentFlow := businessflow.NewPaymentFlow(planoRepo, pagamentoRepo, paymentGateway, cfg.MercadoPago, db)
	notificationFlow := businessflow.NewNotificationFlow(emailProvider, cfg.Email)
	securityFlow := businessflow.NewSecurityFlow(securityLogRepo, rateLimitLogRepo)
	weatherFlow := businessflow.NewWeatherFlow(weatherService, cfg.Weather)

	// Initialize handlers
	shortURLHandler := handlers.NewShortURLHandler(shortURLFlow, shortURLVisitFlow)
	adminShortURLHandler := handlers.NewAdminShortURLHandler(adminShortURLFlow)
	paymentHandler := handlers.NewPaymentHandler(paymentFlow)
	notificationHandler := handlers.NewNotificationHandler(notificationFlow)
	securityHandler := handlers.NewSecurityHandler(securityFlow)
	weatherHandler := handlers.NewWeatherHandler(weatherFlow)

	identityMiddleware := middleware.NewIdentityMiddleware(cfg.JWT.SecretKey)

	appRouter := router.NewFiberRouter(
		cfg,
		identityMiddleware,
		shortURLHandler,
		adminShortURLHandler,
		paymentHandler,
		notificationHandler,
		securityHandler,
		weatherHandler,
	)

	fiberRouter := appRouter.(*router.FiberRouter)
	application := &Application{
		router:    fiberRouter,
		config:    cfg,
		server:    fiberRouter.GetApp(),
		stopFuncs: stopFuncs,
	}

	return application, nil
}
