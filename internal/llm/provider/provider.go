// Package provider selects the vision model backend from configuration.
package provider

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/revenue-parser/internal/common"
	"github.com/joseph-ayodele/revenue-parser/internal/llm"
	"github.com/joseph-ayodele/revenue-parser/internal/llm/gemini"
	"github.com/joseph-ayodele/revenue-parser/internal/llm/openai"
)

// New builds the configured VisionModel.
func New(ctx context.Context, cfg common.LLMConfig, logger *slog.Logger) (llm.VisionModel, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case common.ProviderOpenAI, "":
		c, err := openai.NewClient(openai.Config{
			APIKey:      cfg.OpenAIAPIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Model:       cfg.OpenAIModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case common.ProviderGemini:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, common.ConfigurationError("LLM_PROVIDER must be one of: openai | gemini")
	}
}
