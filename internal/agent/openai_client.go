package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel/attribute"
)

// OpenAILLMClient implements LLMClient using OpenAI chat completions
type OpenAILLMClient struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAILLMClient creates an OpenAI-backed client.
// baseURL may be empty to use the public endpoint.
func NewOpenAILLMClient(apiKey, baseURL, model string) (*OpenAILLMClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing OpenAI API key", ErrInvalidConfig)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: missing model name", ErrInvalidConfig)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAILLMClient{
		client:      openai.NewClient(opts...),
		model:       model,
		temperature: float64(Temperature),
	}, nil
}

// GenerateContent sends the prompt as a single user message
func (c *OpenAILLMClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.GenerateContent")
	span.SetAttributes(
		attribute.String("llm.provider", ProviderOpenAI),
		attribute.String("llm.model", c.model),
	)
	defer span.End()

	start := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(c.temperature),
	})
	observeCall(ProviderOpenAI, c.model, start, err)
	if err != nil {
		span.RecordError(err)
		log.Printf("[LLM] OpenAI call failed model=%s: %v", c.model, err)
		return "", fmt.Errorf("%w: %w", ErrModelCall, err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", ErrModelCall)
	}

	log.Printf("[LLM] OpenAI call completed model=%s in %v", c.model, time.Since(start))
	return completion.Choices[0].Message.Content, nil
}
