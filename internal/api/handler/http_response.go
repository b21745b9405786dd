package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stock-tracking-backend/internal/api/middleware"
	"github.com/stock-tracking-backend/internal/domain/shared"
)

// Response represents a standard API response
type Response struct {
	Data          interface{} `json:"data,omitempty"`
	Error         *ErrorInfo  `json:"error,omitempty"`
	CorrelationID string      `json:"correlation_id,omitempty"`
}

// ErrorInfo represents error information in a response. Details carries
// supporting data such as the per-item validation report.
type ErrorInfo struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// NewResponse creates a new response with data
func NewResponse(data interface{}) *Response {
	return &Response{
		Data: data,
	}
}

// RespondWithData sends a JSON response with data
func RespondWithData(c *gin.Context, statusCode int, data interface{}) {
	response := NewResponse(data)
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

// RespondOK sends a 200 OK response with data
func RespondOK(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondCreated sends a 201 Created response with data
func RespondCreated(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusCreated, data)
}

// RespondAccepted sends a 202 Accepted response with data
func RespondAccepted(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusAccepted, data)
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message, nil)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	respondError(c, http.StatusNotFound, "RECORD_NOT_FOUND", message, nil)
}

// RespondDomainError translates a service failure into its HTTP shape. The
// closed error taxonomy maps onto statuses here and nowhere else; anything
// outside the taxonomy is logged and reported as an opaque 500.
func RespondDomainError(c *gin.Context, logger *slog.Logger, err error) {
	var domainErr *shared.Error
	if errors.As(err, &domainErr) {
		respondError(c, statusForKind(domainErr.Kind), domainErr.Kind.Code(), domainErr.Message, domainErr.Details)
		return
	}

	logger.Error("Unhandled error",
		"error", err,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	respondError(c, http.StatusInternalServerError, shared.KindUnknown.Code(), "An internal server error occurred", nil)
}

func statusForKind(kind shared.Kind) int {
	switch kind {
	case shared.KindInvalidRequest:
		return http.StatusBadRequest
	case shared.KindRecordNotFound:
		return http.StatusNotFound
	case shared.KindDuplicateFound:
		return http.StatusConflict
	case shared.KindRecordMissingData:
		return http.StatusUnprocessableEntity
	case shared.KindUnexpectedFile:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, statusCode int, code, message string, details interface{}) {
	response := &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		CorrelationID: middleware.GetCorrelationID(c),
	}
	c.JSON(statusCode, response)
}
