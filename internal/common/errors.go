package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors.
// Message is safe to show to end users; Detail carries raw diagnostics
// (model output, response bodies) and is meant for logs only.
type AppError struct {
	Code    string
	Message string
	Kind    error
	Detail  string
	Cause   error

	// Messages lists every rule an export validation failure broke.
	Messages []string
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches the error's Kind. Every transport sub-kind also matches ErrTransport.
func (e *AppError) Is(target error) bool {
	if e.Kind == nil {
		return false
	}
	if target == e.Kind {
		return true
	}
	return target == ErrTransport && isTransportKind(e.Kind)
}

// UserMessage returns the end-user facing message.
func (e *AppError) UserMessage() string {
	return e.Message
}

// Retryable reports whether the caller may retry the same request unchanged.
func (e *AppError) Retryable() bool {
	return e.Kind == ErrUnavailable
}

// GRPCStatus lets AppError flow through grpc/status helpers.
func (e *AppError) GRPCStatus() *status.Status {
	return status.New(KindToCode(e.Kind), e.Message)
}

// Error kinds
var (
	ErrInvalidInput         = errors.New("invalid input")
	ErrConfiguration        = errors.New("configuration error")
	ErrTransport            = errors.New("transport error")
	ErrQuotaExceeded        = errors.New("quota exceeded")
	ErrAuthentication       = errors.New("authentication failed")
	ErrAuthorization        = errors.New("authorization failed")
	ErrUnavailable          = errors.New("service unavailable")
	ErrEmptyResponse        = errors.New("empty response")
	ErrMalformedResponse    = errors.New("malformed response")
	ErrIncompleteExtraction = errors.New("incomplete extraction")
	ErrExportValidation     = errors.New("export validation failed")
)

func isTransportKind(kind error) bool {
	switch kind {
	case ErrQuotaExceeded, ErrAuthentication, ErrAuthorization, ErrUnavailable:
		return true
	}
	return false
}

// Error constructors
func NewAppError(code, message string, kind error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Kind:    kind,
		Cause:   kind,
	}
}

func InvalidInputError(message string) *AppError {
	return NewAppError("INVALID_INPUT", message, ErrInvalidInput)
}

func ConfigurationError(message string) *AppError {
	return NewAppError("CONFIG_ERROR", message, ErrConfiguration)
}

func EmptyResponseError(provider string) *AppError {
	return NewAppError("EMPTY_RESPONSE", "No response from "+providerLabel(provider)+". Please try again.", ErrEmptyResponse)
}

// MalformedResponseError keeps the raw model output as Detail.
func MalformedResponseError(raw string, cause error) *AppError {
	return &AppError{
		Code:    "MALFORMED_RESPONSE",
		Message: "Failed to parse AI response as JSON",
		Kind:    ErrMalformedResponse,
		Detail:  raw,
		Cause:   cause,
	}
}

// IncompleteExtractionError keeps the raw model output as Detail.
func IncompleteExtractionError(raw string, cause error) *AppError {
	return &AppError{
		Code:    "INCOMPLETE_EXTRACTION",
		Message: "Invalid data structure returned from AI",
		Kind:    ErrIncompleteExtraction,
		Detail:  raw,
		Cause:   cause,
	}
}

// ExportValidationError keeps the gate's messages and joins them into Detail for logs.
func ExportValidationError(format string, messages []string) *AppError {
	e := NewAppError("EXPORT_VALIDATION", format+" export failed validation", ErrExportValidation)
	e.Messages = append([]string(nil), messages...)
	e.Detail = strings.Join(messages, "; ")
	return e
}

// HTTPStatusToCode maps a provider HTTP status to its transport code.
func HTTPStatusToCode(httpStatus int) codes.Code {
	switch {
	case httpStatus == http.StatusTooManyRequests:
		return codes.ResourceExhausted
	case httpStatus == http.StatusUnauthorized:
		return codes.Unauthenticated
	case httpStatus == http.StatusForbidden:
		return codes.PermissionDenied
	case httpStatus >= 500 && httpStatus <= 599:
		return codes.Unavailable
	case httpStatus >= 400 && httpStatus <= 499:
		return codes.InvalidArgument
	}
	return codes.Unknown
}

// CodeToKind maps a transport code to an error kind.
func CodeToKind(c codes.Code) error {
	switch c {
	case codes.ResourceExhausted:
		return ErrQuotaExceeded
	case codes.Unauthenticated:
		return ErrAuthentication
	case codes.PermissionDenied:
		return ErrAuthorization
	case codes.Unavailable:
		return ErrUnavailable
	}
	return ErrTransport
}

// KindToCode is the inverse of CodeToKind for the non-transport kinds too.
func KindToCode(kind error) codes.Code {
	switch kind {
	case ErrQuotaExceeded:
		return codes.ResourceExhausted
	case ErrAuthentication:
		return codes.Unauthenticated
	case ErrAuthorization:
		return codes.PermissionDenied
	case ErrUnavailable:
		return codes.Unavailable
	case ErrInvalidInput, ErrExportValidation:
		return codes.InvalidArgument
	case ErrConfiguration:
		return codes.FailedPrecondition
	case ErrMalformedResponse, ErrIncompleteExtraction, ErrEmptyResponse:
		return codes.DataLoss
	}
	return codes.Unknown
}

// ClassifyTransport turns a provider failure into an AppError using the structured
// HTTP status (0 when the request never got a response).
func ClassifyTransport(provider string, httpStatus int, body string, cause error) *AppError {
	var code codes.Code
	switch {
	case httpStatus != 0:
		code = HTTPStatusToCode(httpStatus)
	case errors.Is(cause, context.Canceled):
		code = codes.Canceled
	case errors.Is(cause, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		code = codes.Unavailable
	}
	return ClassifyCode(provider, code, body, cause)
}

// ClassifyCode builds the AppError for an already-mapped transport code.
func ClassifyCode(provider string, code codes.Code, body string, cause error) *AppError {
	kind := CodeToKind(code)
	return &AppError{
		Code:    "TRANSPORT_" + code.String(),
		Message: remediation(provider, kind, cause),
		Kind:    kind,
		Detail:  body,
		Cause:   cause,
	}
}

func remediation(provider string, kind error, cause error) string {
	label := providerLabel(provider)
	switch kind {
	case ErrQuotaExceeded:
		return fmt.Sprintf("%s API quota exceeded. Please check your %s account billing and usage limits at %s, then try again.", label, label, billingURL(provider))
	case ErrAuthentication:
		return fmt.Sprintf("Invalid %s API key. Please check your API key configuration.", label)
	case ErrAuthorization:
		return fmt.Sprintf("%s API access forbidden. Please verify your API key permissions.", label)
	case ErrUnavailable:
		return fmt.Sprintf("%s service is temporarily unavailable. Please try again in a few minutes.", label)
	}
	if cause != nil {
		return "AI parsing failed: " + cause.Error()
	}
	return "AI parsing failed: Unknown error"
}

func providerLabel(provider string) string {
	switch provider {
	case "openai":
		return "OpenAI"
	case "gemini":
		return "Gemini"
	case "":
		return "AI provider"
	}
	return provider
}

func billingURL(provider string) string {
	if provider == "gemini" {
		return "aistudio.google.com"
	}
	return "platform.openai.com"
}

// UserMessage returns the user-facing message of err, or a generic fallback.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.UserMessage()
	}
	if err == nil {
		return ""
	}
	return "An unexpected error occurred"
}

// IsRetryable reports whether err is a transient failure the caller may retry.
func IsRetryable(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Retryable()
}
