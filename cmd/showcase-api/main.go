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

	_ "github.com/noah-isme/innovators-hub-api/api/swagger"
	"github.com/noah-isme/innovators-hub-api/internal/handler"
	"github.com/noah-isme/innovators-hub-api/internal/repository"
	"github.com/noah-isme/innovators-hub-api/internal/service"
	"github.com/noah-isme/innovators-hub-api/pkg/cache"
	"github.com/noah-isme/innovators-hub-api/pkg/config"
	"github.com/noah-isme/innovators-hub-api/pkg/database"
	"github.com/noah-isme/innovators-hub-api/pkg/jobs"
	"github.com/noah-isme/innovators-hub-api/pkg/logger"
	"github.com/noah-isme/innovators-hub-api/pkg/storage"
)

// @title UCU Innovators Hub API
// @version 1.0.0
// @description Project submission, supervisor review and public showcase for student innovations
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const exportCleanupInterval = time.Hour

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.String("addr", cache.Addr(cfg.Redis)), zap.Error(err))
		redisClient = nil
	}

	metrics := service.NewMetricsService()
	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.GalleryTTL, logr, cacheRepo.Enabled())

	queue := jobs.NewQueue("cache", jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
	})
	invalidation := service.NewInvalidationService(cacheSvc, queue, logr)
	queue.Handle(service.JobTypeCacheInvalidate, invalidation.Handle)
	queue.Start(ctx)
	defer queue.Stop()

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	projectSvc := service.NewProjectService(service.ProjectServiceParams{
		Projects:   projectRepo,
		Lister:     projectRepo,
		Categories: lookupRepo,
		Notifier:   invalidation,
		Metrics:    metrics,
		Validator:  validate,
		Logger:     logr,
	})
	reviewSvc := service.NewReviewService(service.ReviewServiceParams{
		Projects:  projectRepo,
		Lister:    projectRepo,
		Reviews:   reviewRepo,
		Notifier:  invalidation,
		Metrics:   metrics,
		Validator: validate,
		Logger:    logr,
	})
	gallerySvc := service.NewGalleryService(projectRepo, cacheSvc, metrics, cfg.Cache.GalleryTTL, logr)
	dashboardSvc := service.NewDashboardService(analyticsRepo, cacheSvc, metrics, cfg.Cache.AnalyticsTTL, logr)
	lookupSvc := service.NewLookupService(lookupRepo)

	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("export storage unavailable", zap.String("dir", cfg.Exports.StorageDir), zap.Error(err))
	}
	exportSvc := service.NewExportService(
		dashboardSvc,
		exportStore,
		storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		metrics,
		service.ExportConfig{Enabled: cfg.Exports.Enabled, Retention: cfg.Exports.SignedURLTTL},
		logr,
	)
	go cleanupExports(ctx, exportSvc, logr)

	checks := map[string]handler.Pinger{"database": handler.PingFunc(db.PingContext)}
	if redisClient != nil {
		checks["cache"] = cacheRepo
	}

	router := newRouter(cfg, logr, routeDeps{
		auth:       authSvc,
		metrics:    metrics,
		home:       handler.NewHomeHandler(cfg.AppName),
		authH:      handler.NewAuthHandler(authSvc),
		lookups:    handler.NewLookupHandler(lookupSvc),
		gallery:    handler.NewGalleryHandler(gallerySvc),
		student:    handler.NewStudentHandler(projectSvc, lookupSvc),
		supervisor: handler.NewSupervisorHandler(reviewSvc),
		admin:      handler.NewAdminHandler(dashboardSvc, exportSvc, metrics),
		downloads:  handler.NewDownloadHandler(exportSvc),
		ops:        handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func cleanupExports(ctx context.Context, exports *service.ExportService, logr *zap.Logger) {
	ticker := time.NewTicker(exportCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := exports.Cleanup()
			if err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				logr.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		}
	}
}

