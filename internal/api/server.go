// Package api hosts the HTTP surface: the gin server, its routes and
// middleware, and the handler/service layers behind them.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/api/handler"
	"github.com/stock-tracking-backend/internal/api/service"
	"github.com/stock-tracking-backend/internal/config"
)

// Server handles HTTP requests and manages the application's lifecycle
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	httpRouter *gin.Engine
}

// Services bundles the per-entity services the server exposes.
type Services struct {
	Stocks       service.StockService
	Transactions service.TransactionService
	Shorts       service.ShortDataService
	Diary        service.DiaryService
	Ingestion    service.IngestionService
}

// NewServer creates and configures a new HTTP server with the given services
func NewServer(log *slog.Logger, cfg *config.Config, services Services) *Server {
	if cfg.Application.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	httpRouter := gin.New()

	stockHandler := handler.NewStockHandler(log, services.Stocks)
	transactionHandler := handler.NewTransactionHandler(log, services.Transactions)
	shortHandler := handler.NewShortHandler(log, services.Shorts, services.Ingestion)
	diaryHandler := handler.NewDiaryHandler(log, services.Diary)

	setupRouter(log, httpRouter, stockHandler, transactionHandler, shortHandler, diaryHandler)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      httpRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Server{
		logger:     log,
		httpServer: httpServer,
		httpRouter: httpRouter,
	}
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server with a timeout
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")

	shutdownCtx, cancel := context.WithTimeout(ctx, s.httpServer.WriteTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop HTTP server: %w", err)
	}
	return nil
}
