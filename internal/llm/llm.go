// Package llm wraps the hosted text-generation providers behind a single
// Completer interface.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Provider names accepted by New.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Default models per provider.
const (
	DefaultOpenAIModel = "gpt-4.1"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// DefaultTemperature keeps roadmap output focused.
const DefaultTemperature = 0.2

// DefaultTimeout bounds one completion when the caller's context has no deadline.
const DefaultTimeout = 2 * time.Minute

// Sentinel errors.
var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrMissingAPIKey   = errors.New("llm api key is not set")
	ErrEmptyResponse   = errors.New("llm returned no text")
)

// Completer turns a system prompt and a user message into text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config configures a provider client.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
	HTTPClient  *http.Client
}

// Client is a Completer that also reports what it talks to.
type Client interface {
	Completer
	Provider() string
	Model() string
}

// New builds the client for cfg.Provider. A model name that belongs to the
// other provider (for example the OpenAI default with provider gemini) is
// replaced by the provider default.
func New(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w for provider %q", ErrMissingAPIKey, cfg.Provider)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case ProviderOpenAI, "":
		if cfg.Model == "" || strings.HasPrefix(cfg.Model, "gemini") {
			cfg.Model = DefaultOpenAIModel
		}
		return NewOpenAIClient(cfg), nil
	case ProviderGemini:
		if cfg.Model == "" || strings.HasPrefix(cfg.Model, "gpt-") {
			cfg.Model = DefaultGeminiModel
		}
		return NewGeminiClient(context.Background(), cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
}

// withDeadline applies timeout when ctx has no deadline of its own.
func withDeadline(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok || timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
