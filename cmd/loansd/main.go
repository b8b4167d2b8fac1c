package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/application/usecase"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/service"
	rediscache "github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/infrastructure/cache"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/infrastructure/config"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/infrastructure/messaging"
	pgRepo "github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/infrastructure/persistence/postgres"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/presentation/rest"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/pkg/auth"
	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/pkg/observability"
	pkgpostgres "github.com/Sriniketh-Vangipuram-996/Loan-Management-System/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// .env is a development convenience; absence is not an error.
	_ = godotenv.Load() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	logger.Info("starting", "http_port", cfg.HTTPPort, "metrics_port", cfg.MetricsPort)

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pgCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	pool, err := pkgpostgres.NewPool(dbCtx, pgCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(pgCfg.DSN(), cfg.MigrationsDir); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Redis rate cache.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	rateCache := rediscache.NewRedisRateCache(redisClient, logger)

	// Kafka event publisher.
	producer := messaging.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, logger)

	// Repositories and domain services.
	loanRepo := pgRepo.NewLoanRepo(pool)
	settingsRepo := pgRepo.NewSettingsRepo(pool)
	userRepo := pgRepo.NewUserRepo(pool)
	resolver := service.NewRateResolver(settingsRepo, rateCache, logger)

	// JWT service.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		Expiration: cfg.JWT.Expiration,
	})
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// Use cases.
	submitUC := usecase.NewSubmitLoanUseCase(loanRepo, resolver, publisher, logger)
	quoteUC := usecase.NewQuoteLoanUseCase(resolver)
	getLoanUC := usecase.NewGetLoanUseCase(loanRepo)
	listLoansUC := usecase.NewListLoansUseCase(loanRepo)
	listOwnUC := usecase.NewListOwnerLoansUseCase(loanRepo)
	dispositionUC := usecase.NewDispositionLoanUseCase(loanRepo, publisher, logger)
	dashboardUC := usecase.NewDashboardStatsUseCase(loanRepo, userRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(loanRepo)
	customerStatsUC := usecase.NewCustomerStatsUseCase(loanRepo)
	getRatesUC := usecase.NewGetRatesUseCase(resolver)
	updateRatesUC := usecase.NewUpdateRatesUseCase(resolver, publisher, logger)
	userService := usecase.NewUserService(userRepo, jwtSvc, logger)

	// HTTP surface.
	authHandler := rest.NewAuthHandler(userService, logger)
	loanHandler := rest.NewLoanHandler(submitUC, quoteUC, getLoanUC, listOwnUC, customerStatsUC, getRatesUC, logger)
	adminHandler := rest.NewAdminHandler(listLoansUC, getLoanUC, dispositionUC, dashboardUC, analyticsUC, updateRatesUC, userService, loanRepo, logger)
	healthHandler := rest.NewHealthHandler(pool)

	router := rest.NewRouter(jwtSvc, authHandler, loanHandler, adminHandler, healthHandler)

	metrics, metricsHandler := observability.NewMetrics(cfg.ServiceName)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           metrics.InstrumentHandler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr(),
		Handler:           metricsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("metrics server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown error", "error", err)
	}

	logger.Info("stopped")
}
