package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"stakehub/internal/config"
)

// GeminiClient implements Completer using Google's Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *zap.Logger
}

var _ Completer = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini completer. Without an API key the client
// is returned unavailable instead of failing, so callers can degrade.
func NewGeminiClient(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (*GeminiClient, error) {
	c := &GeminiClient{
		model:   cfg.Model,
		timeout: cfg.Timeout(),
		log:     log.Named("gemini"),
	}
	if c.model == "" {
		c.model = config.DefaultAIConfig().Model
	}

	if !cfg.IsEnabled() {
		c.log.Warn("GEMINI_API_KEY not configured, AI features disabled")
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	c.client = client
	c.log.Info("gemini client ready", zap.String("model", c.model))
	return c, nil
}

// IsAvailable reports whether an API key was configured.
func (c *GeminiClient) IsAvailable() bool {
	return c != nil && c.client != nil
}

// Complete sends prompt as a single user turn.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.IsAvailable() {
		return "", ErrUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from Gemini")
	}

	c.log.Debug("gemini completion",
		zap.Int("prompt_len", len(prompt)),
		zap.Int("response_len", len(text)),
		zap.Duration("latency", time.Since(start)),
	)
	return text, nil
}
