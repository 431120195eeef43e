package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/rshade/carbonplan/internal/logging"
)

// GeminiClient completes prompts with the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewGeminiClient builds a Gemini API client from cfg.
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingAPIKey, ProviderGemini)
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
	}, nil
}

// Provider implements Client.
func (c *GeminiClient) Provider() string { return ProviderGemini }

// Model implements Client.
func (c *GeminiClient) Model() string { return c.model }

// Complete sends user as content with system as the system instruction.
func (c *GeminiClient) Complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := withDeadline(ctx, c.timeout)
	defer cancel()

	log := logging.FromContext(ctx)
	log.Debug().
		Str("component", "llm").
		Str("operation", "complete").
		Str("provider", ProviderGemini).
		Str("model", c.model).
		Int("user_bytes", len(user)).
		Msg("requesting content generation")

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(user), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return text, nil
}
