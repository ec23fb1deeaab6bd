package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/noam-r/magic-four-squared/internal/puzzle"
	"github.com/noam-r/magic-four-squared/internal/riddle"
	"github.com/noam-r/magic-four-squared/internal/square"
	"github.com/noam-r/magic-four-squared/internal/words"
)

func openTestDB(t *testing.T) *PuzzleStore {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// Second run must be a no-op.
	if err := Migrate(db); err != nil {
		t.Fatalf("re-migrate: %v", err)
	}
	return NewPuzzleStore(db)
}

func testPuzzle(t *testing.T, createdAt time.Time) *puzzle.Puzzle {
	t.Helper()
	rows := []string{"CARD", "AREA", "REAR", "DART"}
	rs := make([]riddle.Riddle, len(rows))
	for i, w := range rows {
		rs[i] = riddle.Riddle{Word: w, Text: "clue for " + w, Source: riddle.SourceTemplate}
	}
	p, err := puzzle.New(words.English, square.Square{Grid: square.GridFromRows(rows), Words: rows}, rs)
	if err != nil {
		t.Fatalf("building puzzle: %v", err)
	}
	p.CreatedAt = createdAt
	return p
}

func TestPuzzleSaveAndGet(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	p := testPuzzle(t, time.Now().UTC())
	if err := s.Save(ctx, p, false); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != p.ID || got.Grid[2] != "REAR" || len(got.Riddles) != 4 {
		t.Fatalf("round trip lost data: %+v", got)
	}

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublishedRotationOrder(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	first := testPuzzle(t, base)
	second := testPuzzle(t, base.Add(time.Hour))
	draft := testPuzzle(t, base.Add(2*time.Hour))

	if err := s.Save(ctx, second, true); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, first, true); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, draft, false); err != nil {
		t.Fatal(err)
	}

	n, err := s.CountPublished(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 published, got %d (%v)", n, err)
	}

	// Offset order follows creation time, not insert order.
	got, err := s.PublishedAt(ctx, 0)
	if err != nil || got.ID != first.ID {
		t.Fatalf("offset 0: expected %s, got %+v (%v)", first.ID, got, err)
	}
	got, err = s.PublishedAt(ctx, 1)
	if err != nil || got.ID != second.ID {
		t.Fatalf("offset 1: expected %s, got %+v (%v)", second.ID, got, err)
	}
	if _, err := s.PublishedAt(ctx, 2); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound past the end, got %v", err)
	}

	// The listing mirrors the offset order and skips the draft.
	list, err := s.ListPublished(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != first.ID || list[1].ID != second.ID {
		t.Fatalf("unexpected listing: %+v", list)
	}
	if list[0].Language != "en" || list[0].Size != 4 {
		t.Fatalf("summary fields wrong: %+v", list[0])
	}
}

func TestResultsAndLeaderboard(t *testing.T) {
	s := openTestDB(t)
	ctx := context.Background()

	p := testPuzzle(t, time.Now().UTC())
	if err := s.Save(ctx, p, true); err != nil {
		t.Fatal(err)
	}

	results := []Result{
		{PuzzleID: p.ID, PlayerID: "slow", Solved: true, Checks: 5, ElapsedMs: 90_000},
		{PuzzleID: p.ID, PlayerID: "fast", Solved: true, Checks: 2, ElapsedMs: 30_000},
		{PuzzleID: p.ID, PlayerID: "quit", Solved: false, Checks: 1, ElapsedMs: 10_000},
	}
	for _, r := range results {
		if err := s.InsertResult(ctx, r); err != nil {
			t.Fatalf("insert result: %v", err)
		}
	}

	// A second finish by the same player is ignored.
	if err := s.InsertResult(ctx, Result{PuzzleID: p.ID, PlayerID: "fast", Solved: true, Checks: 1, ElapsedMs: 1}); err != nil {
		t.Fatalf("duplicate insert: %v", err)
	}

	lb, err := s.Leaderboard(ctx, p.ID, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb) != 2 {
		t.Fatalf("expected 2 solved rows, got %d", len(lb))
	}
	if lb[0].PlayerID != "fast" || lb[0].ElapsedMs != 30_000 {
		t.Fatalf("expected fast first, got %+v", lb)
	}
	if lb[1].PlayerID != "slow" {
		t.Fatalf("expected slow second, got %+v", lb)
	}
}

func TestSaveRejectsInvalidPuzzle(t *testing.T) {
	s := openTestDB(t)
	p := testPuzzle(t, time.Now().UTC())
	p.Grid[0] = "AREA" // duplicates row 1
	p.Words[0] = "AREA"
	p.Riddles[0].Word = "AREA"
	if err := s.Save(context.Background(), p, true); err == nil {
		t.Fatal("expected invalid puzzle to be rejected")
	}
}
