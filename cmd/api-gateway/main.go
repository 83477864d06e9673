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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/audition-directory-api/api/swagger"
	"github.com/noah-isme/audition-directory-api/internal/handler"
	"github.com/noah-isme/audition-directory-api/internal/middleware"
	"github.com/noah-isme/audition-directory-api/internal/repository"
	"github.com/noah-isme/audition-directory-api/internal/service"
	"github.com/noah-isme/audition-directory-api/pkg/cache"
	"github.com/noah-isme/audition-directory-api/pkg/config"
	"github.com/noah-isme/audition-directory-api/pkg/database"
	"github.com/noah-isme/audition-directory-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/audition-directory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/audition-directory-api/pkg/middleware/requestid"
)

// @title Audition Directory API
// @version 1.0.0
// @description Company directory with derived audition status and upcoming ranking
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()

	// Redis is optional; without it every lookup is a miss.
	var cacheRepo *repository.CacheRepository
	if cfg.Directory.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, directory cache disabled", zap.Error(err))
		}
		cacheRepo = repository.NewCacheRepository(client, "directory:")
	} else {
		cacheRepo = repository.NewCacheRepository(nil, "directory:")
	}
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Directory.CacheTTL, logr, cfg.Directory.CacheEnabled)

	directorySvc := service.NewDirectoryService(service.DirectoryServiceParams{
		Companies: repository.NewCompanyRepository(db),
		Auditions: repository.NewAuditionRepository(db),
		Cache:     cacheSvc,
		Metrics:   metricsSvc,
		Validator: validator.New(),
		Logger:    logr,
		Config: service.DirectoryServiceConfig{
			Location: cfg.Directory.Location,
			CacheTTL: cfg.Directory.CacheTTL,
			PageSize: cfg.Directory.PageSize,
		},
	})
	exportSvc := service.NewExportService(directorySvc, service.ExportConfig{
		Enabled: cfg.Exports.Enabled,
		Title:   cfg.Exports.Title,
	}, logr, nil, nil)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	directoryHandler := handler.NewDirectoryHandler(directorySvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta())
	api.GET("/companies", directoryHandler.ListCompanies)
	api.GET("/companies/export", exportHandler.Upcoming)
	api.GET("/companies/:id", directoryHandler.GetCompany)
	api.GET("/auditions/:id", directoryHandler.GetAudition)
	api.POST("/auditions/evaluate", directoryHandler.EvaluateAudition)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("timezone", cfg.Directory.Location.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
