package agent

import (
	"context"
	"fmt"
	"log"

	"book-recommender/backend/internal/agent/deps"
	"book-recommender/backend/internal/agent/prompt"
	"book-recommender/backend/internal/agent/response"
	"book-recommender/backend/internal/metrics"
	"book-recommender/backend/internal/model"

	"go.opentelemetry.io/otel/attribute"
)

// Recommender turns preferences into one model call and remembers the
// suggested titles per session
type Recommender struct {
	llmClient     deps.LLMClient
	history       deps.HistoryStore
	promptBuilder *prompt.Builder
	pickHint      prompt.HintPicker
}

// Option customizes a Recommender
type Option func(*Recommender)

// WithHintPicker replaces the random hint selection
func WithHintPicker(pick prompt.HintPicker) Option {
	return func(r *Recommender) {
		r.pickHint = pick
	}
}

// NewRecommender creates a Recommender
func NewRecommender(llmClient deps.LLMClient, history deps.HistoryStore, opts ...Option) *Recommender {
	r := &Recommender{
		llmClient:     llmClient,
		history:       history,
		promptBuilder: prompt.NewBuilder(),
		pickHint:      prompt.RandomHint,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend asks the model for one book. It returns (nil, nil) when genre or
// language is missing: no prompt is built and no call is made.
// A model failure is returned wrapped in ErrModelCall and leaves the history untouched.
func (r *Recommender) Recommend(ctx context.Context, sessionID string, prefs model.Preferences) (*model.Recommendation, error) {
	if !prefs.Complete() {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return nil, nil
	}
	if err := prefs.Validate(); err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "recommender.Recommend")
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("prefs.region", string(prefs.Region)),
		attribute.Int("prefs.paragraphs", prefs.Paragraphs),
	)
	defer span.End()

	previous, err := r.history.Titles(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if len(previous) > 0 {
		log.Printf("[HISTORY] Previously suggested books: %v", previous)
	}

	hint := r.pickHint()
	query := r.promptBuilder.BuildRecommendationPrompt(prefs, previous, hint)
	log.Printf("[RECOMMEND] genre=%q language=%q region=%q exclusions=%d hint=%q",
		prefs.Genre, prefs.Language, prefs.Region, len(prefs.ManualExclusions), hint)

	raw, err := r.llmClient.GenerateContent(ctx, query)
	if err != nil {
		span.RecordError(err)
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return nil, err
	}

	parsed := response.Parse(raw)

	if parsed.Title == "" {
		log.Printf("[RECOMMEND] No title extracted, history unchanged")
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeUntitled).Inc()
	} else {
		added, err := r.history.Add(ctx, sessionID, parsed.Title)
		if err != nil {
			// The recommendation is still shown, it just may be suggested again
			log.Printf("[HISTORY] Warning: Failed to save %q: %v", parsed.Title, err)
		} else if added {
			log.Printf("[HISTORY] Saved suggestion: %s", parsed.Title)
		}
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeTitled).Inc()
	}

	return &model.Recommendation{
		Title:  parsed.Title,
		Body:   parsed.Body,
		Hint:   hint,
		Prompt: query,
	}, nil
}

// History returns the titles suggested so far in the session
func (r *Recommender) History(ctx context.Context, sessionID string) ([]string, error) {
	return r.history.Titles(ctx, sessionID)
}

// Reset ends the session's history
func (r *Recommender) Reset(ctx context.Context, sessionID string) error {
	if err := r.history.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	log.Printf("[HISTORY] Session %s reset", sessionID)
	return nil
}
