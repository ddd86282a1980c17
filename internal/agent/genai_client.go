package agent

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"book-recommender/backend/internal/metrics"

	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/genai"
)

// GeminiLLMClient implements LLMClient using the Gemini API
type GeminiLLMClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiLLMClient creates a new GeminiLLMClient
func NewGeminiLLMClient(client *genai.Client, model string) *GeminiLLMClient {
	return &GeminiLLMClient{
		client:      client,
		model:       model,
		temperature: Temperature,
	}
}

// NewGeminiLLMClientFromKey creates the genai client and wraps it
func NewGeminiLLMClientFromKey(ctx context.Context, apiKey, model string) (*GeminiLLMClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: missing Gemini API key", ErrInvalidConfig)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return NewGeminiLLMClient(client, model), nil
}

// GenerateContent sends the prompt in one non-streaming call
func (c *GeminiLLMClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, span := tracer.Start(ctx, "llm.GenerateContent")
	span.SetAttributes(
		attribute.String("llm.provider", ProviderGemini),
		attribute.String("llm.model", c.model),
	)
	defer span.End()

	start := time.Now()
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}, config)
	observeCall(ProviderGemini, c.model, start, err)
	if err != nil {
		span.RecordError(err)
		log.Printf("[LLM] Gemini call failed model=%s: %v", c.model, err)
		return "", fmt.Errorf("%w: %w", ErrModelCall, err)
	}

	// Concatenate text parts of the first candidate
	var sb strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if part.Text != "" {
				sb.WriteString(part.Text)
			}
		}
	}

	log.Printf("[LLM] Gemini call completed model=%s in %v", c.model, time.Since(start))
	return sb.String(), nil
}

// observeCall records the call counter and latency
func observeCall(provider, model string, start time.Time, err error) {
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.LLMCallTotal.WithLabelValues(provider, model, status).Inc()
	metrics.LLMCallDuration.WithLabelValues(provider, model).Observe(time.Since(start).Seconds())
}
