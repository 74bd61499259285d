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

	_ "github.com/noah-isme/school-inventory-api/api/swagger"
	"github.com/noah-isme/school-inventory-api/internal/handler"
	internalmiddleware "github.com/noah-isme/school-inventory-api/internal/middleware"
	"github.com/noah-isme/school-inventory-api/internal/models"
	"github.com/noah-isme/school-inventory-api/internal/repository"
	"github.com/noah-isme/school-inventory-api/internal/service"
	"github.com/noah-isme/school-inventory-api/pkg/cache"
	"github.com/noah-isme/school-inventory-api/pkg/config"
	"github.com/noah-isme/school-inventory-api/pkg/database"
	"github.com/noah-isme/school-inventory-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-inventory-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-inventory-api/pkg/middleware/requestid"
)

// @title School Inventory API
// @version 1.0.0
// @description Stock tracking for school supplies and books with a material request workflow
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logr.Info("database schema applied")
	}

	dependencies := map[string]handler.Pinger{"database": handler.PingFunc(db.PingContext)}

	metrics := service.NewMetricsService()

	var statsCache *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		cacheRepo := repository.NewCacheRepository(redisClient)
		dependencies["redis"] = cacheRepo
		statsCache = service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, true)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	bookRepo := repository.NewBookRepository(db)

	securityLogs := service.NewSecurityLogService(repository.NewSecurityLogRepository(db), logr)
	authService := service.NewAuthService(userRepo, securityLogs, metrics, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
		SingleSession:      cfg.Auth.SingleSession,
		MaxFailedAttempts:  cfg.Auth.MaxFailedAttempts,
		LockoutWindow:      cfg.Auth.LockoutWindow,
	})
	userService := service.NewUserService(userRepo, validate, logr)
	materialService := service.NewMaterialService(materialRepo, statsCache, metrics, validate, logr)
	bookService := service.NewBookService(bookRepo, statsCache, metrics, validate, logr)
	requestService := service.NewRequestService(repository.NewRequestRepository(db), statsCache, metrics, logr)

	created, err := userService.EnsureBootstrapAdmin(ctx, cfg.Auth.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if created {
		logr.Warn("bootstrap administrator created, change its password", zap.String("username", models.BootstrapUsername))
	}

	handlers := handler.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Materials:    handler.NewMaterialHandler(materialService),
		Books:        handler.NewBookHandler(bookService),
		Categories:   handler.NewTaxonomyHandler(service.NewTaxonomyService(repository.NewTaxonomyRepository(db, models.TaxonomyCategory), logr)),
		Publishers:   handler.NewTaxonomyHandler(service.NewTaxonomyService(repository.NewTaxonomyRepository(db, models.TaxonomyPublisher), logr)),
		Requests:     handler.NewRequestHandler(requestService),
		Users:        handler.NewUserHandler(userService),
		SecurityLogs: handler.NewSecurityLogHandler(securityLogs),
	}
	if cfg.Reports.Enabled {
		handlers.Reports = handler.NewReportHandler(service.NewReportService(materialService, bookService, logr, service.ReportConfig{Title: cfg.Reports.Title}))
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))
	r.Use(internalmiddleware.WithResponseMeta())

	ops := handler.NewMetricsHandler(metrics.Handler(), dependencies)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handlers, authService, logr.Named("audit"))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.Bool("cache", statsCache != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
