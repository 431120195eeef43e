package roadmap

import (
	"context"

	"github.com/rshade/carbonplan/internal/llm"
)

// Generator produces roadmap text from a payload.
type Generator interface {
	Generate(ctx context.Context, p Payload) (string, error)
}

// Describer is implemented by generators that can name their backend.
type Describer interface {
	Provider() string
	Model() string
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, p Payload) (string, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, p Payload) (string, error) {
	return f(ctx, p)
}

// LLMGenerator sends SystemPrompt and the payload JSON to a completer.
type LLMGenerator struct {
	completer llm.Completer
	system    string
}

// NewLLMGenerator wraps c with the default system prompt.
func NewLLMGenerator(c llm.Completer) *LLMGenerator {
	return &LLMGenerator{completer: c, system: SystemPrompt}
}

// Generate implements Generator.
func (g *LLMGenerator) Generate(ctx context.Context, p Payload) (string, error) {
	user, err := p.JSON()
	if err != nil {
		return "", err
	}
	return g.completer.Complete(ctx, g.system, string(user))
}

// Provider reports the completer's provider, or "custom".
func (g *LLMGenerator) Provider() string {
	if d, ok := g.completer.(Describer); ok {
		return d.Provider()
	}
	return "custom"
}

// Model reports the completer's model, or "".
func (g *LLMGenerator) Model() string {
	if d, ok := g.completer.(Describer); ok {
		return d.Model()
	}
	return ""
}
