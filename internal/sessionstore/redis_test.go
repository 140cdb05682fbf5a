package sessionstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/quizlab/quizlab-backend/internal/config"
	"github.com/quizlab/quizlab-backend/internal/quiz"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisStore(rdb, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	session := testSession(t)
	if _, err := session.RecordAnswer(1); err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("ID = %q, want %q", got.ID, session.ID)
	}
	if !got.IsCompleted() {
		t.Error("completion state lost in round trip")
	}
	if got.Score() != 1 {
		t.Errorf("Score = %d, want 1", got.Score())
	}
	if got.Questions[0].Options[1] != "Pacific" {
		t.Errorf("question options lost: %v", got.Questions[0].Options)
	}
}

func TestRedisStoreGetMissing(t *testing.T) {
	store, _ := newRedisStore(t)

	_, err := store.Get(context.Background(), "no-such-session")
	if !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStorePutSetsTTL(t *testing.T) {
	store, mr := newRedisStore(t)
	session := testSession(t)

	if err := store.Put(context.Background(), session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	key := config.CacheKey.SessionKey(session.ID)
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	// Expired sessions disappear from the registry.
	mr.FastForward(2 * time.Hour)
	if _, err := store.Get(context.Background(), session.ID); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("err after expiry = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	store, _ := newRedisStore(t)
	ctx := context.Background()
	session := testSession(t)

	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, session.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("err after delete = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStoreCount(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Put(ctx, testSession(t)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}
	// Unrelated keys must not be counted.
	mr.Set("questions:stats", "{}")

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}
