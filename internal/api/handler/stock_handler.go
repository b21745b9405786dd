package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/api/service"
	"github.com/stock-tracking-backend/internal/domain/stock"
)

// StockHandler handles HTTP requests for stock operations
type StockHandler struct {
	stockService service.StockService
	logger       *slog.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(logger *slog.Logger, stockService service.StockService) *StockHandler {
	return &StockHandler{
		stockService: stockService,
		logger:       logger,
	}
}

// List returns the stocks matching the whitelisted query parameters
func (h *StockHandler) List(c *gin.Context) {
	stocks, err := h.stockService.List(c.Request.Context(), queryParams(c))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	if stocks == nil {
		stocks = []*stock.Stock{}
	}
	RespondOK(c, stocks)
}

// GetByTicker retrieves a stock by its ticker code
func (h *StockHandler) GetByTicker(c *gin.Context) {
	st, err := h.stockService.Get(c.Request.Context(), c.Param("ticker_no"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, st)
}

// Create inserts a batch of new stocks from a JSON array body
func (h *StockHandler) Create(c *gin.Context) {
	var items []map[string]any
	if err := c.ShouldBindJSON(&items); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	results, err := h.stockService.Create(c.Request.Context(), items)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondCreated(c, results)
}

// Upsert merges one stock keyed on the path ticker code
func (h *StockHandler) Upsert(c *gin.Context) {
	var item map[string]any
	if err := c.ShouldBindJSON(&item); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.stockService.Upsert(c.Request.Context(), c.Param("ticker_no"), item)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}

// Delete removes a stock by its ticker code
func (h *StockHandler) Delete(c *gin.Context) {
	result, err := h.stockService.Delete(c.Request.Context(), c.Param("ticker_no"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}
