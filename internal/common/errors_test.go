package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestClassifyTransport(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		cause     error
		wantKind  error
		wantCode  codes.Code
		retryable bool
		contains  string
	}{
		{"rate limited", http.StatusTooManyRequests, nil, ErrQuotaExceeded, codes.ResourceExhausted, false, "platform.openai.com"},
		{"bad key", http.StatusUnauthorized, nil, ErrAuthentication, codes.Unauthenticated, false, "Invalid OpenAI API key"},
		{"forbidden", http.StatusForbidden, nil, ErrAuthorization, codes.PermissionDenied, false, "access forbidden"},
		{"bad gateway", http.StatusBadGateway, nil, ErrUnavailable, codes.Unavailable, true, "temporarily unavailable"},
		{"service unavailable", http.StatusServiceUnavailable, nil, ErrUnavailable, codes.Unavailable, true, "temporarily unavailable"},
		{"network failure", 0, errors.New("connection refused"), ErrUnavailable, codes.Unavailable, true, "temporarily unavailable"},
		{"deadline", 0, context.DeadlineExceeded, ErrTransport, codes.DeadlineExceeded, false, "AI parsing failed"},
		{"bad request", http.StatusBadRequest, errors.New("non-2xx status: 400"), ErrTransport, codes.InvalidArgument, false, "non-2xx status: 400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyTransport("openai", tt.status, `{"error":"x"}`, tt.cause)

			assert.ErrorIs(t, err, tt.wantKind)
			assert.ErrorIs(t, err, ErrTransport)
			assert.Equal(t, tt.retryable, err.Retryable())
			assert.Equal(t, tt.retryable, IsRetryable(fmt.Errorf("extract: %w", err)))
			assert.Contains(t, err.UserMessage(), tt.contains)
			assert.Equal(t, `{"error":"x"}`, err.Detail)
			assert.Equal(t, "TRANSPORT_"+tt.wantCode.String(), err.Code)
		})
	}
}

func TestClassifyCode_GeminiRemediation(t *testing.T) {
	err := ClassifyCode("gemini", codes.ResourceExhausted, "", nil)

	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.UserMessage(), "Gemini API quota exceeded")
	assert.Contains(t, err.UserMessage(), "aistudio.google.com")
}

func TestAppError_KindsDoNotCrossMatch(t *testing.T) {
	err := MalformedResponseError("not json", errors.New("invalid character"))

	assert.ErrorIs(t, err, ErrMalformedResponse)
	assert.NotErrorIs(t, err, ErrIncompleteExtraction)
	assert.NotErrorIs(t, err, ErrTransport)
	assert.Equal(t, "not json", err.Detail)
	assert.False(t, err.Retryable())
}

func TestAppError_GRPCStatus(t *testing.T) {
	wrapped := fmt.Errorf("extract: %w", ClassifyCode("openai", codes.PermissionDenied, "", nil))

	st, ok := status.FromError(wrapped)
	require.True(t, ok)
	assert.Equal(t, codes.PermissionDenied, st.Code())
}

func TestExportValidationError(t *testing.T) {
	err := ExportValidationError("CDEX", []string{"Company name is required", "Reporting period is required"})

	assert.ErrorIs(t, err, ErrExportValidation)
	assert.Equal(t, "Company name is required; Reporting period is required", err.Detail)
	assert.Equal(t, []string{"Company name is required", "Reporting period is required"}, err.Messages)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "An unexpected error occurred", UserMessage(errors.New("boom")))
	assert.Equal(t, "bad file", UserMessage(fmt.Errorf("validate: %w", InvalidInputError("bad file"))))
}
