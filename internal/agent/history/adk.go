package history

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"google.golang.org/adk/session"
)

const (
	// ADKAppName scopes sessions inside the ADK session service
	ADKAppName = "book_recommender"
	// ADKUserID is the user every web session is filed under
	ADKUserID = "web"
	// SuggestedBooksStateKey is the session state key holding the history
	SuggestedBooksStateKey = "suggested_books"
)

// ADKStore keeps histories in ADK session state.
// Session state is only written at creation, so an update replaces the session
// with a new one carrying the merged list.
type ADKStore struct {
	mu      sync.Mutex
	service session.Service
}

// NewADKStore wraps an ADK session service
func NewADKStore(service session.Service) *ADKStore {
	return &ADKStore{service: service}
}

// NewInMemoryADKStore creates a store on top of ADK's in-memory service
func NewInMemoryADKStore() *ADKStore {
	return NewADKStore(session.InMemoryService())
}

// Titles returns the suggested titles in the session state
func (s *ADKStore) Titles(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	titles, _ := s.load(ctx, sessionID)
	return titles, nil
}

// Add appends title if it is new for the session
func (s *ADKStore) Add(ctx context.Context, sessionID, title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, exists := s.load(ctx, sessionID)
	if contains(previous, title) {
		return false, nil
	}
	titles := append(append([]string{}, previous...), title)

	if exists {
		if err := s.service.Delete(ctx, &session.DeleteRequest{
			AppName:   ADKAppName,
			UserID:    ADKUserID,
			SessionID: sessionID,
		}); err != nil {
			return false, fmt.Errorf("failed to delete session: %w", err)
		}
	}

	if err := s.create(ctx, sessionID, titles); err != nil {
		if exists {
			// Restore the previous state
			if restoreErr := s.create(ctx, sessionID, previous); restoreErr != nil {
				log.Printf("[HISTORY] Warning: Session %s lost %d suggestion(s): %v", sessionID, len(previous), previous)
			}
		}
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	log.Printf("[HISTORY] Session %s now has %d suggestion(s)", sessionID, len(titles))
	return true, nil
}

// Clear deletes the ADK session
func (s *ADKStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.load(ctx, sessionID); !exists {
		return nil
	}
	if err := s.service.Delete(ctx, &session.DeleteRequest{
		AppName:   ADKAppName,
		UserID:    ADKUserID,
		SessionID: sessionID,
	}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *ADKStore) create(ctx context.Context, sessionID string, titles []string) error {
	_, err := s.service.Create(ctx, &session.CreateRequest{
		AppName:   ADKAppName,
		UserID:    ADKUserID,
		SessionID: sessionID,
		State:     map[string]any{SuggestedBooksStateKey: titles},
	})
	return err
}

// load reads the history and whether the session exists. A failed lookup is
// treated as a session that has not been created yet.
func (s *ADKStore) load(ctx context.Context, sessionID string) ([]string, bool) {
	getResp, err := s.service.Get(ctx, &session.GetRequest{
		AppName:   ADKAppName,
		UserID:    ADKUserID,
		SessionID: sessionID,
	})
	if err != nil {
		return []string{}, false
	}

	value, err := getResp.Session.State().Get(SuggestedBooksStateKey)
	if err != nil {
		return []string{}, true
	}
	return stateTitles(value), true
}

// stateTitles converts a stored state value back to a title list
func stateTitles(value any) []string {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return deduplicateStrings(out)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return deduplicateStrings(out)
	default:
		return []string{}
	}
}
