package common

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/joseph-ayodele/revenue-parser/constants"
)

// Config holds all application configuration
type Config struct {
	LLM    LLMConfig
	Raster RasterConfig
	Server ServerConfig
	Export ExportConfig
}

// LLMConfig holds vision-model configuration. Only the key of the selected
// provider is required.
type LLMConfig struct {
	Provider      string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	Temperature   float32
	MaxTokens     int
	Timeout       time.Duration
}

// RasterConfig holds PDF rasterization configuration
type RasterConfig struct {
	Pdftoppm    string
	DPI         int
	MaxPages    int
	MaxUploadMB int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr    string
	CORSOrigins []string
}

// ExportConfig holds export configuration
type ExportConfig struct {
	// JitterSeed seeds the owner-interest jitter; 0 means time-seeded.
	JitterSeed uint64
}

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	v := viper.New()

	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("OPENAI_MODEL", "gpt-4o")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("LLM_TEMPERATURE", 0.01)
	v.SetDefault("LLM_MAX_TOKENS", 2000)
	v.SetDefault("LLM_TIMEOUT", 90*time.Second)
	v.SetDefault("PDFTOPPM", "pdftoppm")
	v.SetDefault("RASTER_DPI", 150)
	v.SetDefault("RASTER_MAX_PAGES", 0)
	v.SetDefault("MAX_UPLOAD_MB", constants.MaxUploadMBDefault)
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("JITTER_SEED", 0)

	v.AutomaticEnv()

	return &Config{
		LLM: LLMConfig{
			Provider:      strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			OpenAIAPIKey:  v.GetString("OPENAI_API_KEY"),
			OpenAIModel:   v.GetString("OPENAI_MODEL"),
			OpenAIBaseURL: v.GetString("OPENAI_BASE_URL"),
			GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
			GeminiModel:   v.GetString("GEMINI_MODEL"),
			Temperature:   float32(v.GetFloat64("LLM_TEMPERATURE")),
			MaxTokens:     v.GetInt("LLM_MAX_TOKENS"),
			Timeout:       v.GetDuration("LLM_TIMEOUT"),
		},
		Raster: RasterConfig{
			Pdftoppm:    v.GetString("PDFTOPPM"),
			DPI:         v.GetInt("RASTER_DPI"),
			MaxPages:    v.GetInt("RASTER_MAX_PAGES"),
			MaxUploadMB: v.GetInt("MAX_UPLOAD_MB"),
		},
		Server: ServerConfig{
			HTTPAddr:    v.GetString("HTTP_ADDR"),
			CORSOrigins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
		Export: ExportConfig{
			JitterSeed: v.GetUint64("JITTER_SEED"),
		},
	}
}

func parseOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Validate checks the loaded configuration. It runs before any network call.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if strings.TrimSpace(c.LLM.OpenAIAPIKey) == "" {
			return ConfigurationError("OPENAI_API_KEY is required. Please set up your API key first.")
		}
	case ProviderGemini:
		if strings.TrimSpace(c.LLM.GeminiAPIKey) == "" {
			return ConfigurationError("GEMINI_API_KEY is required. Please set up your API key first.")
		}
	default:
		return ConfigurationError("LLM_PROVIDER must be one of: openai | gemini")
	}
	if c.Raster.MaxUploadMB <= 0 {
		return ConfigurationError("MAX_UPLOAD_MB must be positive")
	}
	if c.Raster.DPI <= 0 {
		return ConfigurationError("RASTER_DPI must be positive")
	}
	return nil
}

// APIKey returns the credential of the selected provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}
