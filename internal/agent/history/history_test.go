package history

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"book-recommender/backend/internal/agent/deps"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"google.golang.org/adk/session"
)

const testTTL = time.Minute

// newMiniRedisStore runs a RedisStore against an in-process server
func newMiniRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), testTTL)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

// backends returns every store implementation
func backends(t *testing.T) map[string]deps.HistoryStore {
	t.Helper()
	rs, _ := newMiniRedisStore(t)
	return map[string]deps.HistoryStore{
		"memory": NewMemoryStore(),
		"adk":    NewInMemoryADKStore(),
		"redis":  rs,
	}
}

func newSessionID() string {
	return "test-" + uuid.New().String()
}

func TestStore_EmptyOnFirstUse(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			titles, err := store.Titles(context.Background(), newSessionID())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(titles) != 0 {
				t.Errorf("expected empty history, got %v", titles)
			}
		})
	}
}

func TestStore_AddKeepsOrderAndUniqueness(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			sid := newSessionID()
			steps := []struct {
				title string
				added bool
			}{
				{"The Concrete Island", true},
				{"Kokoro", true},
				{"The Concrete Island", false},
				{"", false},
				{"   ", false},
				{"Ficciones", true},
			}
			for _, step := range steps {
				added, err := store.Add(ctx, sid, step.title)
				if err != nil {
					t.Fatalf("Add(%q): %v", step.title, err)
				}
				if added != step.added {
					t.Errorf("Add(%q) = %v, want %v", step.title, added, step.added)
				}
			}

			titles, err := store.Titles(ctx, sid)
			if err != nil {
				t.Fatalf("Titles: %v", err)
			}
			want := []string{"The Concrete Island", "Kokoro", "Ficciones"}
			if fmt.Sprint(titles) != fmt.Sprint(want) {
				t.Errorf("got %v, want %v", titles, want)
			}
		})
	}
}

func TestStore_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a, b := newSessionID(), newSessionID()
			if _, err := store.Add(ctx, a, "Solaris"); err != nil {
				t.Fatal(err)
			}

			titles, err := store.Titles(ctx, b)
			if err != nil {
				t.Fatal(err)
			}
			if len(titles) != 0 {
				t.Errorf("session b should not see session a's history, got %v", titles)
			}

			added, err := store.Add(ctx, b, "Solaris")
			if err != nil {
				t.Fatal(err)
			}
			if !added {
				t.Error("same title should be addable in another session")
			}
		})
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			sid := newSessionID()
			store.Add(ctx, sid, "Hopscotch")
			store.Add(ctx, sid, "Blindness")

			if err := store.Clear(ctx, sid); err != nil {
				t.Fatalf("Clear: %v", err)
			}
			titles, _ := store.Titles(ctx, sid)
			if len(titles) != 0 {
				t.Errorf("expected empty history after clear, got %v", titles)
			}

			// Clearing an unknown session is not an error
			if err := store.Clear(ctx, newSessionID()); err != nil {
				t.Errorf("Clear on unknown session: %v", err)
			}

			// History starts over after a clear
			added, _ := store.Add(ctx, sid, "Hopscotch")
			if !added {
				t.Error("expected title to be added again after clear")
			}
		})
	}
}

func TestMemoryStore_TitlesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.Add(ctx, "s", "Kappa")

	titles, _ := store.Titles(ctx, "s")
	titles[0] = "mutated"

	again, _ := store.Titles(ctx, "s")
	if again[0] != "Kappa" {
		t.Errorf("Titles exposed internal slice: %v", again)
	}
}

func TestStateTitles(t *testing.T) {
	if got := stateTitles([]string{"a", "b", "a"}); fmt.Sprint(got) != "[a b]" {
		t.Errorf("unexpected titles from []string: %v", got)
	}
	if got := stateTitles([]any{"a", 3, "c"}); fmt.Sprint(got) != "[a c]" {
		t.Errorf("unexpected titles from []any: %v", got)
	}
	if got := stateTitles(42); len(got) != 0 {
		t.Errorf("expected empty for unknown type, got %v", got)
	}
}

func TestRedisKey(t *testing.T) {
	if RedisKey("abc") != "bookrec:history:abc" {
		t.Errorf("unexpected key: %s", RedisKey("abc"))
	}
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{"", BackendMemory, BackendADK} {
		store, closeFn, err := NewStore(ctx, backend, RedisOptions{})
		if err != nil {
			t.Fatalf("NewStore(%q): %v", backend, err)
		}
		if store == nil || closeFn == nil {
			t.Fatalf("NewStore(%q) returned nil store or close func", backend)
		}
		if err := closeFn(); err != nil {
			t.Errorf("close for %q: %v", backend, err)
		}
	}

	if _, closeFn, err := NewStore(ctx, "disk", RedisOptions{}); err == nil {
		t.Error("expected error for unknown backend")
	} else if closeFn == nil {
		t.Error("close func must not be nil on error")
	}
}

func TestNewStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	store, closeFn, err := NewStore(context.Background(), BackendRedis, RedisOptions{Addr: mr.Addr(), TTL: testTTL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer closeFn()

	if _, ok := store.(*RedisStore); !ok {
		t.Errorf("expected *RedisStore, got %T", store)
	}
}

func TestNewRedisStore_PingFailure(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr}); err == nil {
		t.Error("expected error when redis is unreachable")
	}
}

func TestRedisStore_AddRefreshesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniRedisStore(t)
	sid := newSessionID()
	key := RedisKey(sid)

	if _, err := store.Add(ctx, sid, "Snow Country"); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(key); ttl != testTTL {
		t.Errorf("TTL after add = %v, want %v", ttl, testTTL)
	}

	mr.FastForward(testTTL / 2)
	if _, err := store.Add(ctx, sid, "Thousand Cranes"); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(key); ttl != testTTL {
		t.Errorf("TTL should be refreshed on write, got %v", ttl)
	}

	items, err := mr.List(key)
	if err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(items) != "[Snow Country Thousand Cranes]" {
		t.Errorf("unexpected list %v", items)
	}

	mr.FastForward(testTTL + time.Second)
	titles, err := store.Titles(ctx, sid)
	if err != nil {
		t.Fatal(err)
	}
	if len(titles) != 0 {
		t.Errorf("history should expire with the session, got %v", titles)
	}
}

func TestRedisStore_DuplicateDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniRedisStore(t)
	sid := newSessionID()

	store.Add(ctx, sid, "Kokoro")
	added, err := store.Add(ctx, sid, "Kokoro")
	if err != nil || added {
		t.Errorf("duplicate add = (%v, %v), want (false, nil)", added, err)
	}
	if items, _ := mr.List(RedisKey(sid)); len(items) != 1 {
		t.Errorf("expected a single stored entry, got %v", items)
	}

	if err := store.Clear(ctx, sid); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(RedisKey(sid)) {
		t.Error("key should be deleted on clear")
	}
}

// failingCreateService fails the next failures Create calls
type failingCreateService struct {
	session.Service
	failures int
}

func (s *failingCreateService) Create(ctx context.Context, req *session.CreateRequest) (*session.CreateResponse, error) {
	if s.failures > 0 {
		s.failures--
		return nil, errors.New("create unavailable")
	}
	return s.Service.Create(ctx, req)
}

func TestADKStore_FailedWriteKeepsHistory(t *testing.T) {
	ctx := context.Background()
	svc := &failingCreateService{Service: session.InMemoryService()}
	store := NewADKStore(svc)
	sid := newSessionID()

	if _, err := store.Add(ctx, sid, "Kokoro"); err != nil {
		t.Fatal(err)
	}

	svc.failures = 1
	added, err := store.Add(ctx, sid, "Botchan")
	if err == nil || added {
		t.Fatalf("expected failed add, got (%v, %v)", added, err)
	}

	titles, _ := store.Titles(ctx, sid)
	if fmt.Sprint(titles) != "[Kokoro]" {
		t.Errorf("previous history should be restored, got %v", titles)
	}

	if added, err := store.Add(ctx, sid, "Botchan"); err != nil || !added {
		t.Errorf("retry after failure = (%v, %v), want (true, nil)", added, err)
	}
}
