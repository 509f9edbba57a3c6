package handlers

import (
	"errors"
	"net/http"

	"github.com/SAP-F-2025/llm-dissector/internal/services"
	"github.com/SAP-F-2025/llm-dissector/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestLogger prefers the request-scoped logger set by ContextLogger,
// which already carries method, path and request id.
func (h *BaseHandler) requestLogger(c *gin.Context, additionalFields ...interface{}) (utils.Logger, []interface{}) {
	if _, ok := c.Get("logger"); ok {
		return utils.GetLoggerFromContext(c), additionalFields
	}
	fields := []interface{}{
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"request_id", c.GetHeader("X-Request-ID"),
	}
	return h.logger, append(fields, additionalFields...)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	logger, fields := h.requestLogger(c, append([]interface{}{"remote_addr", c.ClientIP()}, additionalFields...)...)
	logger.Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	logger, fields := h.requestLogger(c, additionalFields...)
	logger.LogError(err, message, fields...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	logger, fields := h.requestLogger(c, additionalFields...)
	logger.Warn(message, fields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.AbortWithStatusJSON(statusCode, errorResp)
}

// handleServiceError maps service errors to HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Session not found", err)
	case errors.Is(err, services.ErrPresetNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Preset not found", err)
	case errors.Is(err, services.ErrSendInFlight):
		h.RespondWithError(c, http.StatusConflict, "A response is still being generated", err)
	case errors.Is(err, services.ErrQuizNotAvailable):
		h.RespondWithError(c, http.StatusConflict, "Send a question before answering the quiz", err)
	case errors.Is(err, services.ErrInvalidChoice):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid choice", err, err.Error())
	case errors.Is(err, services.ErrExportDisabled):
		h.RespondWithError(c, http.StatusForbidden, "Catalog export is disabled", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "Conflict", err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, err.Error())
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, "Access denied", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}
