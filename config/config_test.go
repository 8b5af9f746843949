package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.GenerationProvider)
	assert.Equal(t, "gemini-2.5-flash", cfg.GenerationModel)
	assert.Equal(t, "https://serpapi.com", cfg.SerpAPIURL)
	assert.Equal(t, "https://api.deepgram.com", cfg.DeepgramURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsDev())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", " Ollama ")
	t.Setenv("OLLAMA_URL", "http://ollama:11434")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOllama, cfg.GenerationProvider)
	assert.Equal(t, "llama3.1:8b", cfg.GenerationModel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "9090", cfg.Port)
}

func TestLoad_MissingProviderKey(t *testing.T) {
	t.Setenv("GENERATION_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini with key", Config{GenerationProvider: ProviderGemini, GeminiAPIKey: "k", HTTPTimeout: time.Second}, false},
		{"anthropic without key", Config{GenerationProvider: ProviderAnthropic, HTTPTimeout: time.Second}, true},
		{"unknown provider", Config{GenerationProvider: "snowflake", HTTPTimeout: time.Second}, true},
		{"zero timeout", Config{GenerationProvider: ProviderOllama, OllamaURL: "http://x", HTTPTimeout: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
