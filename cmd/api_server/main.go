package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stock-tracking-backend/internal/api"
	"github.com/stock-tracking-backend/internal/api/service"
	"github.com/stock-tracking-backend/internal/config"
	"github.com/stock-tracking-backend/internal/data/mongo"
	"github.com/stock-tracking-backend/internal/data/postgres"
	"github.com/stock-tracking-backend/internal/ingest"
	"github.com/stock-tracking-backend/internal/logger"
	"github.com/stock-tracking-backend/internal/money"
	"github.com/stock-tracking-backend/internal/platform/messaging/producers"
	"github.com/stock-tracking-backend/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("api_server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize Kafka producer for ingestion events
	eventProducer, err := producers.NewIngestionEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize ingestion event producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	stockRepo := postgres.NewStockRepository(log, postgresDB.Pool())
	transactionRepo := postgres.NewTransactionRepository(log, postgresDB.Pool())
	shortRepo := postgres.NewShortRepository(log, postgresDB.Pool())
	diaryRepo := postgres.NewDiaryRepository(log, postgresDB.Pool())
	currencyRepo := postgres.NewCurrencyRepository(log, postgresDB.Pool())
	jobRepo := mongo.NewJobRepository(log, mongoDB.Database())

	// Load the currency registry before any money can be assembled
	decimals, err := currencyRepo.DecimalPlaces(appCtx)
	if err != nil {
		log.Error("Failed to load currency metadata", "error", err)
		os.Exit(1)
	}
	registry := money.NewRegistry()
	registry.Load(decimals)

	// Initialize the ingestion runner and its HTTP source
	source := ingest.NewHTTPSource(cfg.Ingestion.SourceURL, cfg.Ingestion.FetchTimeout)
	runner, err := ingest.NewRunner(log, cfg, source, shortRepo, jobRepo, eventProducer)
	if err != nil {
		log.Error("Failed to initialize ingestion runner", "error", err)
		os.Exit(1)
	}

	// Initialize services
	services := api.Services{
		Stocks:       service.NewStockService(stockRepo),
		Transactions: service.NewTransactionService(transactionRepo, stockRepo, registry),
		Shorts:       service.NewShortDataService(shortRepo),
		Diary:        service.NewDiaryService(diaryRepo, stockRepo),
		Ingestion:    service.NewIngestionService(runner, jobRepo),
	}

	// Initialize REST server
	server := api.NewServer(log, cfg, services)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Stop running ingestion jobs and release the pool
	runner.Shutdown()

	// Shutdown HTTP server
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = eventProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	// Shutdown postgres connection pool
	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
