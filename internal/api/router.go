package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/api/handler"
	"github.com/stock-tracking-backend/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	stockHandler *handler.StockHandler,
	transactionHandler *handler.TransactionHandler,
	shortHandler *handler.ShortHandler,
	diaryHandler *handler.DiaryHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		stocks := v1.Group("/stocks")
		{
			stocks.GET("", stockHandler.List)
			stocks.POST("", stockHandler.Create)
			stocks.GET("/:ticker_no", stockHandler.GetByTicker)
			stocks.PUT("/:ticker_no", stockHandler.Upsert)
			stocks.DELETE("/:ticker_no", stockHandler.Delete)
		}

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", transactionHandler.List)
			transactions.POST("", transactionHandler.Create)
			transactions.GET("/:id", transactionHandler.GetByID)
			transactions.PUT("/:id", transactionHandler.Upsert)
			transactions.DELETE("/:id", transactionHandler.Delete)
		}

		short := v1.Group("/short")
		{
			short.GET("", shortHandler.List)
			short.POST("", shortHandler.Create)

			// Static segment takes priority over the :id routes below.
			short.POST("/retrieve-from-source", shortHandler.StartIngestion)
			short.GET("/retrieve-from-source/:id", shortHandler.IngestionStatus)
			short.DELETE("/retrieve-from-source/:id", shortHandler.CancelIngestion)

			short.GET("/:id", shortHandler.GetByID)
			short.PUT("/:id", shortHandler.Upsert)
			short.DELETE("/:id", shortHandler.Delete)
		}

		diaryEntries := v1.Group("/diary-entries")
		{
			diaryEntries.GET("", diaryHandler.List)
			diaryEntries.POST("", diaryHandler.Create)
			diaryEntries.GET("/:id", diaryHandler.GetByID)
			diaryEntries.PUT("/:id", diaryHandler.Upsert)
			diaryEntries.DELETE("/:id", diaryHandler.Delete)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
