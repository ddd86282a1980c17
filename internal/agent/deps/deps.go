package deps

import (
	"context"
)

// LLMClient abstracts the single model round trip: prompt in, text out
type LLMClient interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// HistoryStore keeps the titles already suggested in a session
type HistoryStore interface {
	// Titles returns the session's suggestions in insertion order.
	// An unknown session has an empty history.
	Titles(ctx context.Context, sessionID string) ([]string, error)
	// Add appends title unless it is blank or already present.
	Add(ctx context.Context, sessionID, title string) (bool, error)
	// Clear ends the session's history.
	Clear(ctx context.Context, sessionID string) error
}
