package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"linkedin-reviewer/internal/config"
)

// CompletionService turns a prompt into the model's text reply. Failures are
// returned as *ReviewError and are never retried.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Configured() bool
}

// NewCompletionService picks the backend named by cfg.Provider.
func NewCompletionService(cfg config.LLMConfig, logger *zap.Logger) (CompletionService, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiService(cfg, logger)
	default:
		return NewOpenAICompatibleClient(cfg, logger), nil
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type openAICompatibleClient struct {
	cfg        config.LLMConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOpenAICompatibleClient talks to any chat/completions endpoint that follows
// the OpenAI envelope (Groq by default).
func NewOpenAICompatibleClient(cfg config.LLMConfig, logger *zap.Logger) CompletionService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &openAICompatibleClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (c *openAICompatibleClient) Configured() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

func (c *openAICompatibleClient) Complete(ctx context.Context, prompt string) (string, error) {
	start := time.Now()

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	})
	if err != nil {
		return "", newUpstreamError("Failed to encode completion request.", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", newUpstreamError("Failed to contact completion API.", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("completion request failed",
			zap.String("model", c.cfg.Model),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return "", newUpstreamError("Failed to contact completion API.", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newUpstreamError("Failed to read completion API response.", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("completion API returned non-200",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", raw),
			zap.Duration("elapsed", time.Since(start)),
		)
		return "", newUpstreamStatusError(resp.StatusCode, string(raw))
	}

	content, err := firstChoiceContent(raw)
	if err != nil {
		c.logger.Error("unexpected completion envelope",
			zap.Error(err),
			zap.ByteString("raw", raw),
		)
		return "", newUpstreamFormatError(err.Error(), string(raw))
	}

	c.logger.Info("completion received",
		zap.String("model", c.cfg.Model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("content_chars", len(content)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return strings.TrimSpace(content), nil
}

func firstChoiceContent(raw []byte) (string, error) {
	var cc chatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	msg := cc.Choices[0].Message
	if msg == nil || msg.Content == nil {
		return "", fmt.Errorf("choices[0].message.content is missing")
	}
	return *msg.Content, nil
}
