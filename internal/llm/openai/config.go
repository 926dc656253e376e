package openai

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
)

// Config for the OpenAI client.
type Config struct {
	APIKey      string        // required; never read from the environment here
	BaseURL     string        // default https://api.openai.com/v1
	Model       string        // vision-capable model, default gpt-4o
	Temperature float32       // default 0.01
	MaxTokens   int           // default 2000
	ImageDetail string        // low | high | auto, default high
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient fails with a configuration error when no API key is supplied, so the
// problem surfaces before any request is made.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, common.ConfigurationError("OpenAI API key is not configured. Please set up your API key first.")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.01
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.ImageDetail == "" {
		cfg.ImageDetail = "high"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}, nil
}
