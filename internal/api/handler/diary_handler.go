package handler

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/api/service"
	"github.com/stock-tracking-backend/internal/domain/diary"
)

// DiaryHandler handles HTTP requests for diary-entry operations
type DiaryHandler struct {
	diaryService service.DiaryService
	logger       *slog.Logger
}

// NewDiaryHandler creates a new diary-entry handler
func NewDiaryHandler(logger *slog.Logger, diaryService service.DiaryService) *DiaryHandler {
	return &DiaryHandler{
		diaryService: diaryService,
		logger:       logger,
	}
}

// List returns the diary entries matching the whitelisted query parameters
func (h *DiaryHandler) List(c *gin.Context) {
	entries, err := h.diaryService.List(c.Request.Context(), queryParams(c))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	if entries == nil {
		entries = []*diary.Entry{}
	}
	RespondOK(c, entries)
}

// GetByID retrieves a diary entry by its id
func (h *DiaryHandler) GetByID(c *gin.Context) {
	entry, err := h.diaryService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, entry)
}

// Create inserts a batch of new diary entries from a JSON array body
func (h *DiaryHandler) Create(c *gin.Context) {
	var items []map[string]any
	if err := c.ShouldBindJSON(&items); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	results, err := h.diaryService.Create(c.Request.Context(), items)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondCreated(c, results)
}

// Upsert merges one diary entry keyed on the path id
func (h *DiaryHandler) Upsert(c *gin.Context) {
	var item map[string]any
	if err := c.ShouldBindJSON(&item); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.diaryService.Upsert(c.Request.Context(), c.Param("id"), item)
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}

// Delete removes a diary entry by its id
func (h *DiaryHandler) Delete(c *gin.Context) {
	result, err := h.diaryService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, h.logger, err)
		return
	}
	RespondOK(c, result)
}
