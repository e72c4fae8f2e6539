package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"linkedin-reviewer/internal/config"
)

type geminiService struct {
	client    *genai.Client
	modelName string
	cfg       config.LLMConfig
	logger    *zap.Logger
}

// NewGeminiService builds the Gemini completion backend. Without an API key
// no client is created and Complete reports a configuration error.
func NewGeminiService(cfg config.LLMConfig, logger *zap.Logger) (CompletionService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	g := &geminiService{
		modelName: cfg.Model,
		cfg:       cfg,
		logger:    logger,
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return g, nil
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client

	return g, nil
}

func (g *geminiService) Configured() bool {
	return g.client != nil
}

// Complete implements CompletionService.
func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", newConfigurationError("Missing GEMINI_API_KEY environment variable.",
			"Set GEMINI_API_KEY in a .env file or your shell before running the app.")
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	temperature := g.cfg.Temperature
	genConfig := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(g.cfg.MaxTokens),
	}

	start := time.Now()
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), genConfig)
	if err != nil {
		g.logger.Error("gemini request failed",
			zap.String("model", g.modelName),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", newUpstreamError("Failed to contact Gemini API.", err)
	}

	if resp == nil {
		return "", newUpstreamFormatError("no response generated (nil response)", "")
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		raw, _ := json.Marshal(resp)
		g.logger.Error("gemini returned no text", zap.ByteString("raw", raw))
		return "", newUpstreamFormatError("no text content in response", string(raw))
	}

	g.logger.Info("completion received",
		zap.String("model", g.modelName),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("content_chars", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}
