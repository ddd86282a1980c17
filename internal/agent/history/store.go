package history

import (
	"context"
	"fmt"

	"book-recommender/backend/internal/agent/deps"
)

// Backend names accepted by NewStore
const (
	BackendMemory = "memory"
	BackendADK    = "adk"
	BackendRedis  = "redis"
)

// NewStore builds the configured backend. The returned close function releases
// external connections and is never nil.
func NewStore(ctx context.Context, backend string, redisOpts RedisOptions) (deps.HistoryStore, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case "", BackendMemory:
		return NewMemoryStore(), noop, nil
	case BackendADK:
		return NewInMemoryADKStore(), noop, nil
	case BackendRedis:
		store, err := NewRedisStore(ctx, redisOpts)
		if err != nil {
			return nil, noop, err
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown history backend %q", backend)
	}
}
