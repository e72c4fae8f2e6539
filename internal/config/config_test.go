package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("LLM_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.InDelta(t, 0.2, cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, 1800, cfg.LLM.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, int64(16*1024*1024), cfg.Storage.MaxFileSize)
	assert.False(t, cfg.Review.StrictSchema)
	assert.Equal(t, "GROQ_API_KEY", cfg.LLM.CredentialEnv())
}

func TestLoadGeminiProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("LLM_MODEL", "")

	cfg := Load()

	assert.Equal(t, ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "GEMINI_API_KEY", cfg.LLM.CredentialEnv())
}

func TestLoadUnknownProviderFallsBackToGroq(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "mystery")
	t.Setenv("GROQ_API_KEY", "k")

	cfg := Load()

	assert.Equal(t, ProviderGroq, cfg.LLM.Provider)
	assert.Equal(t, "k", cfg.LLM.APIKey)
}

func TestEnvHelpersIgnoreGarbage(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "lots")
	t.Setenv("LLM_TIMEOUT", "soon")
	t.Setenv("REVIEW_STRICT_SCHEMA", "maybe")

	cfg := Load()

	assert.Equal(t, 1800, cfg.LLM.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.Review.StrictSchema)
}

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		cfg := &Config{Server: ServerConfig{Env: env}}
		logger, err := NewLogger(cfg)
		require.NoError(t, err)
		require.NotNil(t, logger)
	}
}
