package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/quizlab/quizlab-backend/internal/model"
	"github.com/quizlab/quizlab-backend/internal/quiz"
)

func testSession(t *testing.T) *quiz.Session {
	t.Helper()
	q, err := model.NewQuestion(
		"Which ocean is the deepest?",
		[]string{"Atlantic", "Pacific", "Indian", "Arctic"},
		1,
	)
	if err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	q.ID = 1

	session, err := quiz.NewSession([]model.Question{*q})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return session
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	session := testSession(t)

	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != session.ID || len(got.Questions) != 1 {
		t.Errorf("got session %+v", got)
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "no-such-session")
	if !errors.Is(err, quiz.ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
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

	// Deleting a missing session is a no-op.
	if err := store.Delete(ctx, session.ID); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestMemoryStoreCount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := store.Put(ctx, testSession(t)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				s := testSession(t)
				s.ID = fmt.Sprintf("worker-%d-%d", i, j)
				if err := store.Put(ctx, s); err != nil {
					t.Errorf("Put: %v", err)
					return
				}
				if _, err := store.Get(ctx, s.ID); err != nil {
					t.Errorf("Get: %v", err)
					return
				}
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 400 {
		t.Errorf("Count = %d, want 400", n)
	}
}
