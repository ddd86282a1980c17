package agent

import (
	"context"
	"errors"
	"fmt"

	"book-recommender/backend/internal/agent/deps"

	"go.opentelemetry.io/otel"
)

const (
	// DefaultModel is the Gemini model used for recommendations
	DefaultModel = "gemini-2.0-flash"
	// DefaultOpenAIModel is used when the openai provider has no model configured
	DefaultOpenAIModel = "gpt-4o-mini"
	// Temperature is the fixed sampling temperature of every call
	Temperature float32 = 0.4

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	// ErrModelCall wraps any failure of the model round trip
	ErrModelCall = errors.New("model call failed")
	// ErrInvalidConfig reports an unusable client configuration
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

var tracer = otel.Tracer("agent")

// LLMOptions selects and configures the model provider
type LLMOptions struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}

// NewLLMClient builds the client for the configured provider
func NewLLMClient(ctx context.Context, opts LLMOptions) (deps.LLMClient, error) {
	switch opts.Provider {
	case "", ProviderGemini:
		model := opts.Model
		if model == "" {
			model = DefaultModel
		}
		return NewGeminiLLMClientFromKey(ctx, opts.APIKey, model)
	case ProviderOpenAI:
		model := opts.Model
		if model == "" {
			model = DefaultOpenAIModel
		}
		return NewOpenAILLMClient(opts.APIKey, opts.BaseURL, model)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, opts.Provider)
	}
}
