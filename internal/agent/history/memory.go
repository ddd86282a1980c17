// Package history holds the per-session list of suggested book titles.
// Three backends share one contract: process memory, the ADK session service,
// and Redis.
package history

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps histories in a map for the lifetime of the process
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]string // sessionID -> suggested titles
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]string)}
}

// Titles returns a copy of the session's history
func (s *MemoryStore) Titles(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles := s.sessions[sessionID]
	out := make([]string, len(titles))
	copy(out, titles)
	return out, nil
}

// Add appends title if it is new for the session
func (s *MemoryStore) Add(ctx context.Context, sessionID, title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if contains(s.sessions[sessionID], title) {
		return false, nil
	}
	s.sessions[sessionID] = append(s.sessions[sessionID], title)
	return true, nil
}

// Clear drops the session's history
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// deduplicateStrings removes duplicates and blanks while preserving order
func deduplicateStrings(input []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(input))
	for _, s := range input {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		result = append(result, s)
	}
	return result
}
