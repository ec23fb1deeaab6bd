package square

import (
	"context"
	"sync"
	"testing"
)

func newSearcher(t *testing.T, opts Options, ws ...string) *Searcher {
	t.Helper()
	idx, err := NewIndex(mustSet(t, 4, ws...))
	if err != nil {
		t.Fatalf("building index: %v", err)
	}
	return NewSearcher(idx, opts)
}

func wordsOf(sq Square) [4]string {
	var out [4]string
	copy(out[:], sq.Words)
	return out
}

func TestSearchFindsKnownSquare(t *testing.T) {
	s := newSearcher(t, Options{Seed: 1}, "ABLE", "BARE", "LREA", "EEAR")
	got := s.Search(context.Background(), 10)
	if len(got) != 1 {
		t.Fatalf("expected exactly 1 square, got %d", len(got))
	}
	want := [4]string{"ABLE", "BARE", "LREA", "EEAR"}
	if wordsOf(got[0]) != want {
		t.Fatalf("expected %v, got %v", want, got[0].Words)
	}
	// Row i must equal column i and the grid must re-validate cleanly.
	for i := 0; i < 4; i++ {
		if got[0].Grid.Row(i) != got[0].Grid.Column(i) {
			t.Fatalf("row %d differs from column %d", i, i)
		}
	}
	if vs := Check(got[0].Grid, s.idx.Set()); len(vs) != 0 {
		t.Fatalf("accepted square must re-validate, got %v", vs)
	}
}

func TestSearchUniformLettersFindsNothing(t *testing.T) {
	// Every candidate forces its own repetition, so the set admits no
	// square with four distinct rows.
	s := newSearcher(t, Options{Seed: 1}, "AAAA", "BBBB", "CCCC", "DDDD")
	if got := s.Search(context.Background(), 5); len(got) != 0 {
		t.Fatalf("expected no squares, got %v", got)
	}
}

func TestSearchHonorsMax(t *testing.T) {
	// DART and DARE both complete CARD/AREA/REAR, so the set holds two
	// squares.
	words := []string{"CARD", "AREA", "REAR", "DART", "DARE"}

	s := newSearcher(t, Options{Seed: 7}, words...)
	if got := s.Search(context.Background(), 10); len(got) != 2 {
		t.Fatalf("expected 2 squares, got %d", len(got))
	}

	s = newSearcher(t, Options{Seed: 7}, words...)
	if got := s.Search(context.Background(), 1); len(got) != 1 {
		t.Fatalf("expected search to stop at 1 square, got %d", len(got))
	}

	s = newSearcher(t, Options{Seed: 7}, words...)
	if got := s.Search(context.Background(), 0); got != nil {
		t.Fatalf("expected nil for max 0, got %v", got)
	}
}

func TestSearchDeterministicWithSeed(t *testing.T) {
	words := []string{"CARD", "AREA", "REAR", "DART", "DARE"}
	run := func(order OrderPolicy) [][4]string {
		s := newSearcher(t, Options{Seed: 42, Order: order}, words...)
		var out [][4]string
		for _, sq := range s.Search(context.Background(), 10) {
			out = append(out, wordsOf(sq))
		}
		return out
	}
	for _, order := range []OrderPolicy{ShuffleFirstWord, ShuffleAllDepths, ShuffleNone} {
		a, b := run(order), run(order)
		if len(a) != len(b) {
			t.Fatalf("%s: runs disagree on count: %d vs %d", order, len(a), len(b))
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("%s: runs diverge at %d: %v vs %v", order, i, a[i], b[i])
			}
		}
	}
}

func TestSearchShuffleNoneFollowsSetOrder(t *testing.T) {
	// With shuffling off the first accepted square must come from the
	// earliest viable first word in set order, whatever the seed says.
	words := []string{"CARD", "AREA", "REAR", "DART", "DARE"}
	for _, seed := range []int64{1, 99, 1234} {
		s := newSearcher(t, Options{Seed: seed, Order: ShuffleNone}, words...)
		got := s.Search(context.Background(), 1)
		if len(got) != 1 || got[0].Words[0] != "CARD" {
			t.Fatalf("seed %d: expected CARD square first, got %v", seed, got)
		}
		if wordsOf(got[0]) != [4]string{"CARD", "AREA", "REAR", "DART"} {
			t.Fatalf("seed %d: expected DART completion first, got %v", seed, got[0].Words)
		}
	}
}

func TestSearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newSearcher(t, Options{Seed: 1}, "CARD", "AREA", "REAR", "DART", "DARE")
	if got := s.Search(ctx, 10); len(got) != 0 {
		t.Fatalf("expected no results after cancellation, got %d", len(got))
	}
}

func TestSearchParallelFindsSameSquares(t *testing.T) {
	words := []string{"CARD", "AREA", "REAR", "DART", "DARE"}
	s := newSearcher(t, Options{Seed: 3, Parallelism: 4}, words...)
	got := s.Search(context.Background(), 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 squares from parallel search, got %d", len(got))
	}
	seen := map[[4]string]bool{}
	for _, sq := range got {
		seen[wordsOf(sq)] = true
	}
	if !seen[[4]string{"CARD", "AREA", "REAR", "DART"}] || !seen[[4]string{"CARD", "AREA", "REAR", "DARE"}] {
		t.Fatalf("parallel search returned unexpected squares: %v", got)
	}
}

func TestSearchParallelHonorsMax(t *testing.T) {
	s := newSearcher(t, Options{Seed: 3, Parallelism: 8}, "CARD", "AREA", "REAR", "DART", "DARE")
	if got := s.Search(context.Background(), 1); len(got) != 1 {
		t.Fatalf("expected 1 square, got %d", len(got))
	}
}

func TestSearchEmitsEvents(t *testing.T) {
	var mu sync.Mutex
	counts := map[EventKind]int{}
	var accepted []string

	s := newSearcher(t, Options{
		Seed: 5,
		Progress: func(ev Event) {
			mu.Lock()
			defer mu.Unlock()
			counts[ev.Kind]++
			if ev.Kind == EventAccepted {
				accepted = append(accepted, ev.FirstWord)
			}
		},
	}, "ABLE", "BARE", "LREA", "EEAR")

	s.Search(context.Background(), 10)

	if counts[EventFirstWord] != 4 {
		t.Fatalf("expected 4 first_word events, got %d", counts[EventFirstWord])
	}
	if counts[EventAccepted] != 1 || len(accepted) != 1 || accepted[0] != "ABLE" {
		t.Fatalf("expected one accepted event for ABLE, got %d (%v)", counts[EventAccepted], accepted)
	}
	// Only ABLE leads anywhere; the other three start words dead-end.
	if counts[EventExhausted] != 3 {
		t.Fatalf("expected 3 exhausted events, got %d", counts[EventExhausted])
	}
}

func TestSearchMultibyteRunes(t *testing.T) {
	// Same structure as the ABLE square, spelled in Hebrew letters.
	// Catches any byte-indexed shortcut in the row logic.
	s := newSearcher(t, Options{Seed: 1}, "אבלע", "בארע", "לרעא", "עעאר")
	got := s.Search(context.Background(), 10)
	if len(got) != 1 {
		t.Fatalf("expected 1 square, got %d", len(got))
	}
	if wordsOf(got[0]) != [4]string{"אבלע", "בארע", "לרעא", "עעאר"} {
		t.Fatalf("unexpected square: %v", got[0].Words)
	}
	if !IsValid(got[0].Grid, s.idx.Set()) {
		t.Fatal("expected valid square")
	}
}

func TestParseOrderPolicy(t *testing.T) {
	if p, ok := ParseOrderPolicy(""); !ok || p != ShuffleFirstWord {
		t.Fatalf("empty policy should default to first, got %q %v", p, ok)
	}
	if p, ok := ParseOrderPolicy("all"); !ok || p != ShuffleAllDepths {
		t.Fatalf("expected all policy, got %q %v", p, ok)
	}
	if _, ok := ParseOrderPolicy("random"); ok {
		t.Fatal("expected rejection of unknown policy")
	}
}
