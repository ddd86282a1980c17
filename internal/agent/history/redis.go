package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RedisKeyPrefix namespaces history lists in Redis
const RedisKeyPrefix = "bookrec:history:"

var tracer = otel.Tracer("history.redis")

// RedisOptions configures the Redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisStore keeps each session's history in a Redis list.
// The TTL is refreshed on every write so a history expires with an idle session.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return NewRedisStoreWithClient(rdb, opts.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Titles returns the session's history in insertion order
func (s *RedisStore) Titles(ctx context.Context, sessionID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "history.Titles",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	titles, err := s.rdb.LRange(ctx, RedisKey(sessionID), 0, -1).Result()
	if err != nil && err != redis.Nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return deduplicateStrings(titles), nil
}

// Add appends title if it is new for the session.
// Concurrent adds in one session may race; the list is deduplicated on read.
func (s *RedisStore) Add(ctx context.Context, sessionID, title string) (bool, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return false, nil
	}

	ctx, span := tracer.Start(ctx, "history.Add",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	key := RedisKey(sessionID)
	existing, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil && err != redis.Nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to read history: %w", err)
	}
	if contains(existing, title) {
		return false, nil
	}

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, title)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to append history: %w", err)
	}
	return true, nil
}

// Clear deletes the session's history
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	ctx, span := tracer.Start(ctx, "history.Clear",
		trace.WithAttributes(attribute.String("session.id", sessionID)))
	defer span.End()

	if err := s.rdb.Del(ctx, RedisKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// RedisKey returns the list key for a session
func RedisKey(sessionID string) string {
	return RedisKeyPrefix + sessionID
}
