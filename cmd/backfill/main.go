package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stock-tracking-backend/internal/config"
	"github.com/stock-tracking-backend/internal/data/mongo"
	"github.com/stock-tracking-backend/internal/data/postgres"
	"github.com/stock-tracking-backend/internal/domain/ingestjob"
	"github.com/stock-tracking-backend/internal/ingest"
	"github.com/stock-tracking-backend/internal/logger"
	"github.com/stock-tracking-backend/internal/platform/messaging/producers"
	"github.com/stock-tracking-backend/internal/platform/persistence"
)

// backfill runs one ingestion job to completion and exits. It shares the
// config, runner, and repositories with the API server; the only difference
// is that nobody else needs the process alive once the job finishes.
func main() {
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	cfg, err := config.LoadConfig("backfill")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg)

	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoDB.Close(context.Background()); err != nil {
			log.Error("Error closing MongoDB connection", "error", err)
		}
	}()

	eventProducer, err := producers.NewIngestionEventProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize ingestion event producer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := eventProducer.Close(); err != nil {
			log.Error("Error closing Kafka producer", "error", err)
		}
	}()

	shortRepo := postgres.NewShortRepository(log, postgresDB.Pool())
	jobRepo := mongo.NewJobRepository(log, mongoDB.Database())

	source := ingest.NewHTTPSource(cfg.Ingestion.SourceURL, cfg.Ingestion.FetchTimeout)
	runner, err := ingest.NewRunner(log, cfg, source, shortRepo, jobRepo, eventProducer)
	if err != nil {
		log.Error("Failed to initialize ingestion runner", "error", err)
		os.Exit(1)
	}
	defer runner.Shutdown()

	job, err := runner.Start(appCtx)
	if err != nil {
		log.Error("Failed to start ingestion job", "error", err)
		os.Exit(1)
	}
	log.Info("Backfill started",
		"job_id", job.ID,
		"from", job.FromDate.Format("2006-01-02"),
		"to", job.ToDate.Format("2006-01-02"),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			log.Info("Shutdown signal received, cancelling job", "job_id", job.ID)
			runner.Stop(job.ID)
		case <-ticker.C:
			current, err := jobRepo.GetByID(appCtx, job.ID)
			if err != nil {
				log.Error("Failed to read job status", "job_id", job.ID, "error", err)
				continue
			}
			if current == nil || current.State == ingestjob.StateRunning {
				continue
			}

			log.Info("Backfill finished",
				"job_id", current.ID,
				"state", current.State,
				"dates", current.DatesProcessed,
				"rows", current.RowsWritten,
				"failures", current.Failures,
			)
			if current.State != ingestjob.StateCompleted {
				os.Exit(1)
			}
			return
		}
	}
}
