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

	"github.com/NikitHamal/flashy-astro-go/internal/api"
	"github.com/NikitHamal/flashy-astro-go/internal/api/handlers"
	"github.com/NikitHamal/flashy-astro-go/internal/cache"
	"github.com/NikitHamal/flashy-astro-go/internal/config"
	"github.com/NikitHamal/flashy-astro-go/internal/database"
	"github.com/NikitHamal/flashy-astro-go/internal/logging"
	"github.com/NikitHamal/flashy-astro-go/internal/middleware"
	"github.com/NikitHamal/flashy-astro-go/internal/services"
	"github.com/NikitHamal/flashy-astro-go/internal/telemetry"
	"github.com/NikitHamal/flashy-astro-go/pkg/ephemeris"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogrus(cfg.LogLevel)

	ctx := context.Background()
	tracing, err := telemetry.Init(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		ServiceName:    cfg.Telemetry.ServiceName,
		ServiceVersion: cfg.Telemetry.ServiceVersion,
		Environment:    cfg.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("Failed to shut down telemetry")
		}
	}()

	if cfg.Telemetry.Enabled && cfg.Telemetry.OTLPEndpoint != "" {
		otlpLogger, err := logging.NewOTLPLogger(logging.OTLPConfig{
			Enabled:        true,
			Endpoint:       cfg.Telemetry.OTLPEndpoint,
			ServiceName:    cfg.Telemetry.ServiceName,
			ServiceVersion: cfg.Telemetry.ServiceVersion,
			Environment:    cfg.Environment,
			LogLevel:       cfg.LogLevel,
		})
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize OTLP log export")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := otlpLogger.Shutdown(shutdownCtx); err != nil {
					logger.WithError(err).Warn("Failed to shut down OTLP log export")
				}
			}()
		}
	}

	// Postgres and Redis are optional at startup: without them the service
	// still computes, it just skips persistence and caching.
	var healthDB handlers.DependencyChecker
	var chartRepo services.ChartRepository
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.WithError(err).Warn("Database unavailable, persistence disabled")
	} else {
		defer db.Close()
		healthDB = db
		chartRepo = database.NewChartRepository(db.Pool)
	}

	var healthRedis handlers.DependencyChecker
	var analysisCache *cache.AnalysisCache
	redisClient, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		logger.WithError(err).Warn("Redis unavailable, result caching disabled")
	} else {
		defer redisClient.Close()
		healthRedis = redisClient
		analysisCache = cache.NewAnalysisCache(redisClient.Client, cfg.Astrology.CacheTTLDuration(), logger)
	}

	ephemerisClient := ephemeris.NewClient(&cfg.Ephemeris, logger)
	ephemerisService := ephemeris.NewService(ephemerisClient)

	chartService := services.NewChartService(chartRepo, nilSafeCache(analysisCache), logger)
	if cfg.Astrology.TransitAlerts {
		scanner := services.NewTransitScanner(logger)
		notifier := services.NewNotificationService(cfg.Telegram.BotToken, cfg.Telegram.ChatID, logger)
		if notifier.Enabled() {
			chartService.EnableTransitAlerts(scanner, notifier)
			logger.Info("Transit alerts enabled")
		} else {
			logger.Info("Transit alerts requested but Telegram is not configured")
		}
	}

	auth := middleware.NewAuthMiddleware(cfg.Security.JWTSecret)

	chartHandler := handlers.NewChartHandler(chartService, ephemerisService, handlers.ChartHandlerOptions{
		PersistByDefault: cfg.Astrology.PersistResults && chartRepo != nil,
		RecentChartsMax:  cfg.Astrology.RecentChartsMax,
	}, logger)
	healthHandler := handlers.NewHealthHandler(healthDB, healthRedis, ephemerisService, cfg.Telemetry.ServiceVersion)

	var cacheAdmin handlers.CacheAdmin
	if analysisCache != nil {
		cacheAdmin = analysisCache
	}
	adminHandler := handlers.NewAdminHandler(cacheAdmin, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	router.Use(middleware.RequestLogger(logger))

	api.SetupRoutes(router, chartHandler, healthHandler, adminHandler, auth)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced server shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}

// nilSafeCache keeps a nil *AnalysisCache from becoming a non-nil interface.
func nilSafeCache(c *cache.AnalysisCache) services.AnalysisCache {
	if c == nil {
		return nil
	}
	return c
}
