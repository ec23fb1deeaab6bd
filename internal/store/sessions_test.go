package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSessionSaveAndGet(t *testing.T) {
	s := NewMemorySessions()
	ctx := context.Background()

	sess := &Session{ID: "s1", PuzzleID: "p1", PlayerID: "anon1", StartedAt: time.Now()}
	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PuzzleID != "p1" || got.PlayerID != "anon1" {
		t.Fatalf("unexpected session: %+v", got)
	}

	// Updates overwrite.
	sess.Guesses = 3
	if err := s.Save(ctx, sess); err != nil {
		t.Fatalf("re-save: %v", err)
	}
	got, _ = s.Get(ctx, "s1")
	if got.Guesses != 3 {
		t.Fatalf("expected updated guesses, got %d", got.Guesses)
	}
}

func TestSessionGetMissing(t *testing.T) {
	s := NewMemorySessions()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := NewMemorySessions()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%10)
			_ = s.Save(ctx, &Session{ID: id, PuzzleID: "p1"})
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		if _, err := s.Get(ctx, fmt.Sprintf("s%d", i)); err != nil {
			t.Fatalf("session s%d missing after concurrent writes", i)
		}
	}
}
