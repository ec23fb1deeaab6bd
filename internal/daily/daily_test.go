package daily

import (
	"testing"
	"time"
)

func TestDateKeyUTC(t *testing.T) {
	// 01:30 local on March 10 in UTC+2 is still 23:30 March 9 in UTC;
	// the key follows the UTC date.
	loc := time.FixedZone("UTC+2", 2*60*60)
	at := time.Date(2025, 3, 10, 1, 30, 0, 0, loc)
	if got := DateKey(at); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %s", got)
	}
}

func TestPuzzleIndexDeterministic(t *testing.T) {
	date := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := PuzzleIndex(date, "salt", 17)
	b := PuzzleIndex(date, "salt", 17)
	if a != b {
		t.Fatalf("same inputs, different indexes: %d vs %d", a, b)
	}
	if a < 0 || a >= 17 {
		t.Fatalf("index %d out of range", a)
	}
}

func TestPuzzleIndexVaries(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seen := map[int]bool{}
	for day := 0; day < 30; day++ {
		seen[PuzzleIndex(base.AddDate(0, 0, day), "salt", 100)] = true
	}
	// 30 days over 100 slots repeating in one or two buckets would mean
	// a broken hash.
	if len(seen) < 10 {
		t.Fatalf("expected varied indexes across a month, got %d distinct", len(seen))
	}

	// Two salts agreeing on one date is a 1-in-1000 fluke; agreeing on a
	// whole week means the salt is ignored.
	differs := false
	for day := 0; day < 7; day++ {
		d := base.AddDate(0, 0, day)
		if PuzzleIndex(d, "salt-a", 1000) != PuzzleIndex(d, "salt-b", 1000) {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatal("different salts produced identical indexes all week")
	}
}

func TestPuzzleIndexEmptyPool(t *testing.T) {
	if got := PuzzleIndex(time.Now(), "salt", 0); got != 0 {
		t.Fatalf("expected 0 for empty pool, got %d", got)
	}
}
