package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/entity"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1/"}, nil)
	require.NoError(t, err)
	return c
}

func request() llm.ExtractRequest {
	return llm.ExtractRequest{
		Pages: []entity.Page{
			{Number: 1, MimeType: "image/png", Data: []byte("p1")},
			{Number: 2, MimeType: "image/png", Data: []byte("p2")},
		},
		Prompt: llm.Prompt{System: "sys", User: "user"},
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{}, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConfiguration)
}

func TestExtract_SendsVisionRequest(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			MaxTokens   int     `json:"max_tokens"`
			Messages    []struct {
				Role    string          `json:"role"`
				Content json.RawMessage `json:"content"`
			} `json:"messages"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		assert.Equal(t, "gpt-4o", body.Model)
		assert.InDelta(t, 0.01, body.Temperature, 1e-6)
		assert.Equal(t, 2000, body.MaxTokens)
		if assert.Len(t, body.Messages, 2) {
			assert.JSONEq(t, `"sys"`, string(body.Messages[0].Content))
			assert.JSONEq(t, `[
				{"type":"text","text":"user"},
				{"type":"image_url","image_url":{"url":"data:image/png;base64,cDE=","detail":"high"}},
				{"type":"image_url","image_url":{"url":"data:image/png;base64,cDI=","detail":"high"}}
			]`, string(body.Messages[1].Content))
		}

		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"company\":\"Acme\"}"},"finish_reason":"stop"}]}`))
	})

	out, err := c.Extract(context.Background(), request())

	require.NoError(t, err)
	assert.Equal(t, `{"company":"Acme"}`, out)
}

func TestExtract_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind error
	}{
		{"quota", http.StatusTooManyRequests, `{"error":{"code":"insufficient_quota"}}`, common.ErrQuotaExceeded},
		{"bad key", http.StatusUnauthorized, `{"error":{"code":"invalid_api_key"}}`, common.ErrAuthentication},
		{"forbidden", http.StatusForbidden, `{}`, common.ErrAuthorization},
		{"upstream down", http.StatusServiceUnavailable, `{}`, common.ErrUnavailable},
		{"no choices", http.StatusOK, `{"choices":[]}`, common.ErrEmptyResponse},
		{"blank content", http.StatusOK, `{"choices":[{"message":{"content":"  "}}]}`, common.ErrEmptyResponse},
		{"garbled envelope", http.StatusOK, `<html>`, common.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.Extract(context.Background(), request())

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

func TestExtract_QuotaMessageHasRemediation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Extract(context.Background(), request())

	assert.Equal(t,
		"OpenAI API quota exceeded. Please check your OpenAI account billing and usage limits at platform.openai.com, then try again.",
		common.UserMessage(err))
	assert.False(t, common.IsRetryable(err))
}
