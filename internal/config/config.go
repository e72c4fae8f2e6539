package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

type Config struct {
	Server      ServerConfig
	LLM         LLMConfig
	Review      ReviewConfig
	Storage     StorageConfig
	Certificate CertificateConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type LLMConfig struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type ReviewConfig struct {
	StrictSchema bool
}

type StorageConfig struct {
	MaxFileSize int64
}

type CertificateConfig struct {
	Issuer          string
	CreditsText     string
	VerificationURL string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderGroq))

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
			Env:  getEnv("ENV", "development"),
		},
		LLM: loadLLMConfig(provider),
		Review: ReviewConfig{
			StrictSchema: getEnvAsBool("REVIEW_STRICT_SCHEMA", false),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 16*1024*1024),
		},
		Certificate: CertificateConfig{
			Issuer:          getEnv("CERTIFICATE_ISSUER", "LinkedIn AI Reviewer"),
			CreditsText:     getEnv("CERTIFICATE_CREDITS", "LinkedIn AI Reviewer - Sparsh Agarwal"),
			VerificationURL: getEnv("CERTIFICATE_VERIFICATION_URL", ""),
		},
	}
}

func loadLLMConfig(provider string) LLMConfig {
	cfg := LLMConfig{
		Provider:    provider,
		Temperature: getEnvAsFloat32("LLM_TEMPERATURE", 0.2),
		MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 1800),
		Timeout:     getEnvAsDuration("LLM_TIMEOUT", "60s"),
	}

	switch provider {
	case ProviderGemini:
		cfg.APIKey = getEnv("GEMINI_API_KEY", "")
		cfg.Model = getEnv("LLM_MODEL", "gemini-2.5-flash")
	default:
		cfg.Provider = ProviderGroq
		cfg.APIKey = getEnv("GROQ_API_KEY", "")
		cfg.BaseURL = getEnv("LLM_BASE_URL", "https://api.groq.com/openai/v1")
		cfg.Model = getEnv("LLM_MODEL", "llama-3.1-8b-instant")
	}

	return cfg
}

// CredentialEnv names the variable the provider's API key is read from.
func (c LLMConfig) CredentialEnv() string {
	if c.Provider == ProviderGemini {
		return "GEMINI_API_KEY"
	}
	return "GROQ_API_KEY"
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
