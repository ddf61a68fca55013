package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobportal-backend/config"
	_ "go-jobportal-backend/docs" // Important for Swagger
	"go-jobportal-backend/internal/delivery/http/middleware"
	v1 "go-jobportal-backend/internal/delivery/http/v1"
	"go-jobportal-backend/internal/usecase"
	"go-jobportal-backend/pkg/auth"
	"go-jobportal-backend/pkg/logger"
	"go-jobportal-backend/pkg/metrics"
	"go-jobportal-backend/pkg/redis"
	"go-jobportal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// @title           Job Portal API
// @version         1.0
// @description     Job portal backend: candidates apply, recruiters post and review, admins manage accounts.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Development: cfg.IsDevelopment()}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()
	logger.Log.Info("Starting job portal backend", zap.String("port", cfg.Port), zap.String("store", cfg.StoreDriver))

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Salaries go out as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	// 3. Setup Store
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		logger.Log.Fatal("Failed to open store", zap.Error(err))
	}
	defer store.close()

	// 4. Setup Redis (optional)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", zap.Error(err))
		} else {
			defer redis.Close()
		}
	}

	// 5. Setup Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.NewCollector(reg)

	// 6. Setup UseCases
	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Expiration: cfg.JWTExpiration,
	})
	if err != nil {
		logger.Log.Fatal("Invalid token configuration", zap.Error(err))
	}
	validate := validation.New()
	opts := []usecase.Option{usecase.WithMetrics(rec)}

	authUC := usecase.NewAuthUsecase(store.users, tokens, auth.NewBcryptHasher(cfg.BcryptCost), validate, opts...)
	jobUC := usecase.NewJobUsecase(store.jobs, store.users, validate, opts...)
	applicationUC := usecase.NewApplicationUsecase(store.apps, store.jobs, store.users, validate, opts...)
	userUC := usecase.NewUserUsecase(store.users, opts...)

	checks := map[string]usecase.Pinger{"store": store.ping}
	if redis.Client() != nil {
		checks["redis"] = redis.HealthCheck
	}
	healthUC := usecase.NewHealthUsecase(checks, 2*time.Second)

	// 7. Setup Rate Limiters
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	globalLimiter := middleware.NewRateLimiter(middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window), redis.Client(), rec)
	defer globalLimiter.Stop()
	authLimiter := middleware.NewRateLimiter(middleware.AuthRateLimitConfig(cfg.RateLimitAuthThreshold, window), redis.Client(), rec)
	defer authLimiter.Stop()

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:             authUC,
		JobUC:              jobUC,
		ApplicationUC:      applicationUC,
		UserUC:             userUC,
		HealthUC:           healthUC,
		GlobalLimiter:      globalLimiter,
		AuthLimiter:        authLimiter,
		Metrics:            rec,
		Gatherer:           reg,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		HSTS:               !cfg.IsDevelopment(),
		RequestTimeout:     cfg.RequestTimeout,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exiting")
}
