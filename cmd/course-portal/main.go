package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-portal-api/api/swagger"
	"github.com/noah-isme/course-portal-api/internal/catalog"
	"github.com/noah-isme/course-portal-api/internal/handler"
	"github.com/noah-isme/course-portal-api/internal/repository"
	"github.com/noah-isme/course-portal-api/internal/service"
	"github.com/noah-isme/course-portal-api/pkg/cache"
	"github.com/noah-isme/course-portal-api/pkg/config"
	"github.com/noah-isme/course-portal-api/pkg/database"
	"github.com/noah-isme/course-portal-api/pkg/logger"
)

// @title Course Portal API
// @version 1.0.0
// @description Course discovery, saved searches and student journey state
// @BasePath /api/v1
// @schemes http

func main() {
	if err := run(); err != nil {
		log.Fatalf("course-portal: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}

	presets := catalog.DefaultPresets()
	if cfg.Catalog.PresetsFile != "" {
		extra, err := catalog.LoadPresets(cfg.Catalog.PresetsFile)
		if err != nil {
			return fmt.Errorf("load presets: %w", err)
		}
		presets = catalog.MergePresets(presets, extra)
		logr.Info("filter presets loaded", zap.String("file", cfg.Catalog.PresetsFile), zap.Int("count", len(presets)))
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, service.CacheConfig{
		Enabled:   cfg.Catalog.CacheEnabled,
		TTL:       cfg.Catalog.CacheTTL,
		Namespace: cfg.Catalog.CacheNamespace,
	}, logr)

	catalogSvc := service.NewCatalogService(repository.NewCourseRepository(db), cacheSvc, metricsSvc, service.CatalogConfig{
		CacheTTL:    cfg.Catalog.CacheTTL,
		Presets:     presets,
		ExportTitle: cfg.Catalog.ExportTitle,
	}, logr)
	journeySvc := service.NewJourneyService(catalogSvc, repository.NewApplicationRepository(db), repository.NewEnrollmentRepository(db), metricsSvc, logr)
	savedSearchSvc := service.NewSavedSearchService(repository.NewSavedSearchRepository(redisClient), validator.New(), cfg.SavedSearches.Limit, logr)
	tokenSvc := service.NewTokenService(service.TokenConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}

	r := newRouter(cfg, logr, routerDeps{
		tokens:       tokenSvc,
		metrics:      metricsSvc,
		catalog:      handler.NewCatalogHandler(catalogSvc),
		journey:      handler.NewJourneyHandler(journeySvc),
		savedSearch:  handler.NewSavedSearchHandler(savedSearchSvc),
		observations: handler.NewMetricsHandler(metricsSvc, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		logr.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logr.Info("server stopped")
	return nil
}
