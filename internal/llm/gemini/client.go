package gemini

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
)

const provider = common.ProviderGemini

// Config for the Gemini client.
type Config struct {
	APIKey      string
	Model       string        // default gemini-2.0-flash
	Temperature float32       // default 0.01
	MaxTokens   int           // default 2000
	Timeout     time.Duration // per call, default 90s
}

// generator is the slice of *genai.Models the client needs.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Client struct {
	cfg    Config
	models generator
	logger *slog.Logger
}

var _ llm.VisionModel = (*Client)(nil)

// NewClient fails with a configuration error when no API key is supplied.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, common.ConfigurationError("Gemini API key is not configured. Please set up your API key first.")
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, common.ConfigurationError("failed to create GenAI client: " + err.Error())
	}
	return newClient(cfg, gc.Models, logger), nil
}

func newClient(cfg Config, models generator, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.01
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{cfg: cfg, models: models, logger: logger}
}

func (c *Client) Name() string { return provider + ":" + c.cfg.Model }

// Extract sends the prompt followed by every page as inline image data.
func (c *Client) Extract(ctx context.Context, req llm.ExtractRequest) (string, error) {
	start := time.Now()
	rid := common.RequestIDFromContext(ctx)

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"provider", provider,
		"model", c.cfg.Model,
		"pages", len(req.Pages),
	)

	parts := make([]*genai.Part, 0, len(req.Pages)+1)
	parts = append(parts, genai.NewPartFromText(req.Prompt.User))
	for _, p := range req.Pages {
		mt := p.MimeType
		if mt == "" {
			mt = "image/png"
		}
		parts = append(parts, genai.NewPartFromBytes(p.Data, mt))
	}

	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(c.cfg.Temperature),
		MaxOutputTokens:   int32(c.cfg.MaxTokens),
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(req.Prompt.System, genai.RoleUser),
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	result, err := c.models.GenerateContent(ctx, c.cfg.Model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, config)
	if err != nil {
		appErr := classify(err)
		c.logger.Error("llm.extract.api_error",
			"req_id", rid, "kind", appErr.Code, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", appErr
	}

	var out string
	if result != nil {
		out = result.Text()
	}
	if strings.TrimSpace(out) == "" {
		c.logger.Error("llm.extract.empty_response",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds())
		return "", common.EmptyResponseError(provider)
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"content_len", len(out),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// classify reads the HTTP code genai attaches to API errors.
func classify(err error) *common.AppError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return common.ClassifyTransport(provider, apiErr.Code, apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return common.ClassifyTransport(provider, apiErrPtr.Code, apiErrPtr.Message, err)
	}
	return common.ClassifyTransport(provider, 0, "", err)
}
