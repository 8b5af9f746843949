package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported values for GENERATION_PROVIDER.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
)

// Config is built once at startup and handed to every constructor that needs
// credentials or endpoints. Nothing reads the environment after Load returns.
type Config struct {
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	GenerationProvider string `mapstructure:"GENERATION_PROVIDER"`
	GenerationModel    string `mapstructure:"GENERATION_MODEL"`
	GeminiAPIKey       string `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey       string `mapstructure:"OPENAI_API_KEY"`
	AnthropicAPIKey    string `mapstructure:"ANTHROPIC_API_KEY"`
	OllamaURL          string `mapstructure:"OLLAMA_URL"`

	SerpAPIKey     string `mapstructure:"SERPAPI_API_KEY"`
	SerpAPIURL     string `mapstructure:"SERPAPI_URL"`
	DeepgramAPIKey string `mapstructure:"DEEPGRAM_API_KEY"`
	DeepgramURL    string `mapstructure:"DEEPGRAM_URL"`

	UnidocLicenseKey string `mapstructure:"UNIDOC_LICENSE_KEY"`

	HTTPTimeout    time.Duration `mapstructure:"HTTP_TIMEOUT"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	MaxUploadBytes int64         `mapstructure:"MAX_UPLOAD_BYTES"`
}

var envKeys = []string{
	"PORT", "ENV", "LOG_LEVEL", "LOG_FORMAT",
	"GENERATION_PROVIDER", "GENERATION_MODEL",
	"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OLLAMA_URL",
	"SERPAPI_API_KEY", "SERPAPI_URL", "DEEPGRAM_API_KEY", "DEEPGRAM_URL",
	"UNIDOC_LICENSE_KEY", "HTTP_TIMEOUT", "CORS_ORIGINS", "MAX_UPLOAD_BYTES",
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("GENERATION_PROVIDER", ProviderGemini)
	v.SetDefault("OLLAMA_URL", "http://localhost:11434")
	v.SetDefault("SERPAPI_URL", "https://serpapi.com")
	v.SetDefault("DEEPGRAM_URL", "https://api.deepgram.com")
	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_BYTES", 20<<20)

	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if len(cfg.CORSOrigins) == 0 {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	cfg.GenerationProvider = strings.ToLower(strings.TrimSpace(cfg.GenerationProvider))
	if cfg.GenerationModel == "" {
		cfg.GenerationModel = DefaultModel(cfg.GenerationProvider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected generation provider can be constructed.
// Search and transcription keys are optional; their absence surfaces as a
// provider failure at call time.
func (c *Config) Validate() error {
	switch c.GenerationProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", c.GenerationProvider)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %q", c.GenerationProvider)
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for provider %q", c.GenerationProvider)
		}
	case ProviderOllama:
		if c.OllamaURL == "" {
			return fmt.Errorf("OLLAMA_URL is required for provider %q", c.GenerationProvider)
		}
	default:
		return fmt.Errorf("unknown GENERATION_PROVIDER %q", c.GenerationProvider)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

// IsDev reports whether the service runs in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DefaultModel returns the model used when GENERATION_MODEL is unset.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-sonnet-4-20250514"
	case ProviderOllama:
		return "llama3.1:8b"
	default:
		return "gemini-2.5-flash"
	}
}
