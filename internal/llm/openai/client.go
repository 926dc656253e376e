package openai

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"google.golang.org/grpc/codes"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
)

const provider = common.ProviderOpenAI

var _ llm.VisionModel = (*Client)(nil)

func (c *Client) Name() string { return provider + ":" + c.cfg.Model }

// Extract sends every page as a high-detail image_url part after the text prompt
// and returns the first choice's content untouched.
func (c *Client) Extract(ctx context.Context, req llm.ExtractRequest) (string, error) {
	start := time.Now()
	rid := common.RequestIDFromContext(ctx)

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"provider", provider,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"pages", len(req.Pages),
	)

	content := make([]map[string]any, 0, len(req.Pages)+1)
	content = append(content, map[string]any{"type": "text", "text": req.Prompt.User})
	for _, p := range req.Pages {
		content = append(content, map[string]any{
			"type": "image_url",
			"image_url": map[string]any{
				"url":    llm.PageDataURL(p),
				"detail": c.cfg.ImageDetail,
			},
		})
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"max_tokens":      c.cfg.MaxTokens,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": req.Prompt.System},
			{"role": "user", "content": content},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.http, endpoint, body, headers, c.logger)
	if err != nil {
		appErr := common.ClassifyTransport(provider, status, string(raw), err)
		c.logger.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "kind", appErr.Code, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", appErr
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.ClassifyCode(provider, codes.DataLoss, string(raw), err)
	}
	if len(cc.Choices) == 0 || strings.TrimSpace(cc.Choices[0].Message.Content) == "" {
		c.logger.Error("llm.extract.empty_response",
			"req_id", rid, "choices", len(cc.Choices),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", common.EmptyResponseError(provider)
	}

	out := cc.Choices[0].Message.Content
	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"finish_reason", cc.Choices[0].FinishReason,
		"content_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}
