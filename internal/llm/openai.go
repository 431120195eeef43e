package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/rshade/carbonplan/internal/logging"
)

// OpenAIClient completes prompts with the OpenAI chat completions API.
// It is safe for concurrent use.
type OpenAIClient struct {
	client      openai.Client
	model       string
	temperature float64
	timeout     time.Duration
}

// NewOpenAIClient builds a client from cfg. The SDK owns retries.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

// Provider implements Client.
func (c *OpenAIClient) Provider() string { return ProviderOpenAI }

// Model implements Client.
func (c *OpenAIClient) Model() string { return c.model }

// Complete sends one system and one user message and returns the first
// choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := withDeadline(ctx, c.timeout)
	defer cancel()

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "llm").
		Str("operation", "complete").
		Str("provider", ProviderOpenAI).
		Str("model", c.model).
		Int("user_bytes", len(user)).
		Msg("requesting chat completion")

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openai chat completion failed (status %d): %w", apiErr.StatusCode, err)
		}
		return "", fmt.Errorf("openai chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}

	log.Debug().
		Str("component", "llm").
		Str("operation", "complete").
		Str("finish_reason", resp.Choices[0].FinishReason).
		Int64("total_tokens", resp.Usage.TotalTokens).
		Msg("chat completion received")

	return text, nil
}
