package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/pharmaops/erpledger/internal/adapter/http"
	"github.com/pharmaops/erpledger/internal/adapter/http/handler"
	postgresRepo "github.com/pharmaops/erpledger/internal/adapter/repository/postgres"
	redisRepo "github.com/pharmaops/erpledger/internal/adapter/repository/redis"
	"github.com/pharmaops/erpledger/internal/infrastructure/config"
	"github.com/pharmaops/erpledger/internal/infrastructure/logger"
	"github.com/pharmaops/erpledger/internal/infrastructure/metrics"
	"github.com/pharmaops/erpledger/internal/infrastructure/postgres"
	"github.com/pharmaops/erpledger/internal/infrastructure/redis"
	"github.com/pharmaops/erpledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize metrics
	m := metrics.New()
	m.DBConnections.Set(float64(cfg.DatabaseMaxConns))

	// Initialize repositories
	retrier := postgresRepo.NewRetrier()
	txManager := postgresRepo.NewTxManager(pool)
	entryRepo := postgresRepo.NewLedgerEntryRepository(pool, retrier)
	directory := postgresRepo.NewAccountDirectory(pool)
	invoiceRepo := postgresRepo.NewInvoiceRepository(pool, retrier)
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	// Initialize use cases
	ledgerUC := usecase.NewLedgerUseCase(txManager, entryRepo, directory, idGen, cfg.DefaultCurrency, m)
	invoiceUC := usecase.NewInvoiceUseCase(directory, ledgerUC, m)
	reportingUC := usecase.NewReportingUseCase(entryRepo, invoiceRepo, cache, m)

	// Initialize handlers
	ledgerHandler := handler.NewLedgerHandler(ledgerUC)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUC)
	reportHandler := handler.NewReportHandler(reportingUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		LedgerHandler:    ledgerHandler,
		InvoiceHandler:   invoiceHandler,
		ReportHandler:    reportHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
