package utils

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Stable error codes surfaced to API clients. Handlers map internal
// failures onto one of these; the raw error string rides along as
// auxiliary detail, never as the primary signal.
const (
	CodeNotFound          = "NOT_FOUND"
	CodeSearchError       = "SEARCH_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeComponentNotFound = "COMPONENT_NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL_ERROR"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta is the metadata block every response envelope carries.
type Meta struct {
	Subsystem      string `json:"subsystem"`
	ResponseTimeMs int64  `json:"response_time_ms"`
}

func NewMeta(subsystem string, start time.Time) *Meta {
	return &Meta{
		Subsystem:      subsystem,
		ResponseTimeMs: time.Since(start).Milliseconds(),
	}
}

func SuccessResponse(c *gin.Context, code int, message string, data interface{}, meta *Meta) {
	c.JSON(code, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func ErrorResponse(c *gin.Context, code int, errCode, message string, err error) {
	response := APIResponse{
		Success: false,
		Code:    errCode,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	c.JSON(code, response)
}
