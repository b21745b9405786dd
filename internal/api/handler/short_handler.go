package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/api/service"
	"github.com/stock-tracking-backend/internal/domain/shortdata"
)

// ShortHandler handles HTTP requests for short-interest rows and for the
// background ingestion runs that fetch them from the source.
type ShortHandler struct {
	shortService     service.ShortDataService
	ingestionService service.IngestionService
	logger           *slog.Logger
}

// NewShortHandler creates a new short-interest handler
func NewShortHandler(logger *slog.Logger, shortService service.ShortDataService, ingestionService service.IngestionService) *ShortHandler {
	return &ShortHandler{
		shortService:     shortService,
		ingestionService: ingestionService,
		logger:           logger,
	}
}

// List returns the short-interest rows matching the whitelisted query parameters
func (h *ShortHandler) List(c *gin.Context) {
	rows, err := h.shortService.List(c.Request.Context(), queryParams(c))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	if rows == nil {
		rows = []*shortdata.ShortData{}
	}
	RespondOK(c, rows)
}

// GetByID retrieves a short-interest row by its id
func (h *ShortHandler) GetByID(c *gin.Context) {
	row, err := h.shortService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, row)
}

// Create inserts a batch of new short-interest rows from a JSON array body
func (h *ShortHandler) Create(c *gin.Context) {
	var items []map[string]any
	if err := c.ShouldBindJSON(&items); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	results, err := h.shortService.Create(c.Request.Context(), items)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondCreated(c, results)
}

// Upsert merges one short-interest row on its natural key
func (h *ShortHandler) Upsert(c *gin.Context) {
	var item map[string]any
	if err := c.ShouldBindJSON(&item); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.shortService.Upsert(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}

// Delete removes a short-interest row by its id
func (h *ShortHandler) Delete(c *gin.Context) {
	result, err := h.shortService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}

// StartIngestion kicks off a background fetch of source files newer than the
// latest stored reporting date. The run is fire-and-forget; the response only
// acknowledges the job.
func (h *ShortHandler) StartIngestion(c *gin.Context) {
	job, err := h.ingestionService.Start(c.Request.Context())
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondAccepted(c, job)
}

// IngestionStatus returns the job record of an ingestion run
func (h *ShortHandler) IngestionStatus(c *gin.Context) {
	job, err := h.ingestionService.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, job)
}

// CancelIngestion stops a running ingestion job
func (h *ShortHandler) CancelIngestion(c *gin.Context) {
	id := c.Param("id")
	if !h.ingestionService.Cancel(id) {
		RespondNotFound(c, "No running ingestion job with id "+id)
		return
	}
	RespondAccepted(c, gin.H{"id": id, "status": "cancelling"})
}
