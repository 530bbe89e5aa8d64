package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quizsmith/backend/internal/apperr"
)

// Config holds all runtime configuration for the service.
type Config struct {
	Provider       string // "openai" or "gemini"
	APIKey         string
	Model          string
	BaseURL        string // optional override for OpenAI-compatible endpoints
	Port           string
	AllowedOrigins []string
}

const (
	defaultOpenAIModel = "gpt-4.1-mini"
	defaultGeminiModel = "gemini-2.0-flash"
)

// Load reads configuration from the environment (a local .env file is
// honoured if present). The provider credential is required: its absence is
// reported as a configuration error before any request is served.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Provider: strings.ToLower(getenv("LLM_PROVIDER", "openai")),
		Model:    os.Getenv("LLM_MODEL"),
		BaseURL:  os.Getenv("LLM_BASE_URL"),
		Port:     getenv("PORT", "8080"),
	}

	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	switch cfg.Provider {
	case "openai":
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return nil, apperr.Configuration("OPENAI_API_KEY is not configured")
		}
		if cfg.Model == "" {
			cfg.Model = getenv("OPENAI_MODEL", defaultOpenAIModel)
		}
	case "gemini":
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.APIKey == "" {
			return nil, apperr.Configuration("GEMINI_API_KEY is not configured")
		}
		if cfg.Model == "" {
			cfg.Model = defaultGeminiModel
		}
	default:
		return nil, apperr.Configuration("unsupported LLM_PROVIDER: " + cfg.Provider)
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
