package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simhire-backend/config"
	_ "simhire-backend/docs" // Important for Swagger
	v1 "simhire-backend/internal/delivery/http/v1"
	"simhire-backend/internal/events"
	"simhire-backend/internal/repository/cache"
	"simhire-backend/internal/repository/postgres"
	"simhire-backend/internal/usecase"
	"simhire-backend/pkg/auth"
	"simhire-backend/pkg/database"
	"simhire-backend/pkg/logger"
	"simhire-backend/pkg/redis"
	"simhire-backend/pkg/validation"
)

// @title           SimHire API
// @version         1.0
// @description     Job and internship hiring pipelines with simulated-work assessments.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting simhire backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, memory fallback when absent)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory fallback", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Event Publisher (no-op without NATS_URL)
	publisher, err := events.NewPublisher(cfg.NatsURL)
	if err != nil {
		logger.Log.Warn("NATS unavailable, events disabled", "error", err)
		publisher = events.Noop()
	}
	defer publisher.Close()

	// 6. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	internshipRepo := postgres.NewInternshipRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	internshipAppRepo := postgres.NewInternshipApplicationRepository(dbPool)
	simulasiRepo := postgres.NewSimulasiRepository(dbPool)

	leaderboardCache := cache.NewLeaderboardCache(redis.Client(), cfg.LeaderboardCacheTTL)
	denylist := cache.NewTokenDenylist(redis.Client())
	loginGuard := cache.NewLoginTracker(redis.Client(), cache.DefaultLoginTrackerConfig())

	// 7. Setup UseCases
	validate := validation.New()
	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authUC := usecase.NewAuthUsecase(userRepo, issuer, denylist, loginGuard, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)
	internshipUC := usecase.NewInternshipUsecase(internshipRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, publisher, validate)
	internshipAppUC := usecase.NewInternshipApplicationUsecase(internshipAppRepo, internshipRepo, publisher, validate)
	simulasiUC := usecase.NewSimulasiUsecase(simulasiRepo, leaderboardCache, publisher, validate, cfg.LeaderboardSize)

	checks := map[string]usecase.HealthCheck{
		"database": dbPool.Ping,
	}
	if redis.Client() != nil {
		checks["redis"] = redis.HealthCheck
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:                  authUC,
		JobUC:                   jobUC,
		InternshipUC:            internshipUC,
		ApplicationUC:           applicationUC,
		InternshipApplicationUC: internshipAppUC,
		SimulasiUC:              simulasiUC,
		HealthUC:                healthUC,
		Issuer:                  issuer,
		Denylist:                denylist,
		Config:                  cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
