package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
)

const (
	ErrBadRequest     = "BAD_REQUEST"
	ErrValidation     = "VALIDATION_ERROR"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

func BadRequest(c *gin.Context, message string, details map[string]any) {
	GetLogger(c).Warn("http.bad_request", "message", message, "path", c.Request.URL.Path)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{Code: ErrBadRequest, Message: message, Details: details, RequestID: GetRequestID(c)},
	})
}

// ValidationError reports request binding failures field by field.
func ValidationError(c *gin.Context, verrs validator.ValidationErrors) {
	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = formatFieldError(fe)
	}
	GetLogger(c).Warn("http.validation_failed", "path", c.Request.URL.Path, "fields", details)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:      ErrValidation,
			Message:   "Validation failed for one or more fields",
			Details:   details,
			RequestID: GetRequestID(c),
		},
	})
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return "Value is too long or large (maximum: " + fe.Param() + ")"
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	default:
		return "Validation failed for tag: " + fe.Tag()
	}
}

// statusFor maps an error kind to the HTTP status returned to clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrExportValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, common.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, common.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, common.ErrTransport),
		errors.Is(err, common.ErrEmptyResponse),
		errors.Is(err, common.ErrMalformedResponse),
		errors.Is(err, common.ErrIncompleteExtraction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// AppError writes err as the standard error body. Raw diagnostics (model
// output, upstream bodies) go to the log only.
func AppError(c *gin.Context, err error) {
	status := statusFor(err)
	detail := ErrorDetail{
		Code:      ErrInternalServer,
		Message:   common.UserMessage(err),
		RequestID: GetRequestID(c),
	}

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		detail.Code = appErr.Code
		if appErr.Retryable() {
			detail.Details = map[string]any{"retryable": true}
		}
		if errors.Is(err, common.ErrExportValidation) {
			detail.Details = map[string]any{"errors": appErr.Messages}
		}
	}

	logger := GetLogger(c)
	if status >= http.StatusInternalServerError {
		attrs := []any{"status", status, "error", err}
		if appErr != nil && appErr.Detail != "" {
			attrs = append(attrs, "detail", appErr.Detail)
		}
		logger.Error("http.request.failed", attrs...)
	} else {
		logger.Warn("http.request.rejected", "status", status, "error", err)
	}

	_ = c.Error(err)
	c.JSON(status, ErrorResponse{Error: detail})
}
