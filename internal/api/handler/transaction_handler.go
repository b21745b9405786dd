package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/api/service"
)

// TransactionHandler handles HTTP requests for stock-transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// List returns the transactions matching the whitelisted query parameters
func (h *TransactionHandler) List(c *gin.Context) {
	txs, err := h.transactionService.List(c.Request.Context(), queryParams(c))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, mapTransactionsToResponse(txs))
}

// GetByID retrieves a transaction by its id
func (h *TransactionHandler) GetByID(c *gin.Context) {
	tx, err := h.transactionService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, mapTransactionToResponse(tx))
}

// Create inserts a batch of new transactions from a JSON array body
func (h *TransactionHandler) Create(c *gin.Context) {
	var items []map[string]any
	if err := c.ShouldBindJSON(&items); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	results, err := h.transactionService.Create(c.Request.Context(), items)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondCreated(c, results)
}

// Upsert merges one transaction keyed on the path id
func (h *TransactionHandler) Upsert(c *gin.Context) {
	var item map[string]any
	if err := c.ShouldBindJSON(&item); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.transactionService.Upsert(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}

// Delete removes a transaction by its id
func (h *TransactionHandler) Delete(c *gin.Context) {
	result, err := h.transactionService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}
