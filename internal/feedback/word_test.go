package feedback

import (
	"errors"
	"testing"
)

func marksOf(t *testing.T, guess, answer string) []Mark {
	t.Helper()
	lms, err := ScoreWord(guess, answer)
	if err != nil {
		t.Fatalf("ScoreWord(%q, %q): %v", guess, answer, err)
	}
	out := make([]Mark, len(lms))
	for i, lm := range lms {
		out[i] = lm.Mark
	}
	return out
}

func wantMarks(t *testing.T, got []Mark, want ...Mark) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got, want)
		}
	}
}

func TestScoreWordAllHit(t *testing.T) {
	marks := marksOf(t, "CARD", "CARD")
	wantMarks(t, marks, MarkHit, MarkHit, MarkHit, MarkHit)

	lms, _ := ScoreWord("CARD", "CARD")
	if !AllHit(lms) {
		t.Fatal("expected AllHit")
	}
	if lms[2].Char != "R" || lms[2].Index != 2 {
		t.Fatalf("unexpected letter mark %+v", lms[2])
	}
}

func TestScoreWordNoOverlap(t *testing.T) {
	wantMarks(t, marksOf(t, "FILM", "CARD"), MarkMiss, MarkMiss, MarkMiss, MarkMiss)
}

func TestScoreWordAllPresent(t *testing.T) {
	wantMarks(t, marksOf(t, "TRAP", "DART"), MarkPresent, MarkPresent, MarkPresent, MarkMiss)
}

func TestScoreWordRepeatedGuessLetter(t *testing.T) {
	// ABBA against BABA: positions 2 and 3 hit, and the leftover A and B
	// each have exactly one unconsumed copy left, so both leading
	// letters come back present. Naive single-pass scoring double-counts
	// here.
	wantMarks(t, marksOf(t, "ABBA", "BABA"), MarkPresent, MarkPresent, MarkHit, MarkHit)
}

func TestScoreWordGuessHasMoreCopiesThanAnswer(t *testing.T) {
	// AREA holds two As. Both are consumed by the hits at the ends, so
	// the middle As of AAAA get nothing.
	wantMarks(t, marksOf(t, "AAAA", "AREA"), MarkHit, MarkMiss, MarkMiss, MarkHit)

	// TEST holds two Ts: one hit, one present, third T goes empty.
	wantMarks(t, marksOf(t, "TTTA", "TEST"), MarkHit, MarkPresent, MarkMiss, MarkMiss)
}

func TestScoreWordPresentConsumesLeftToRight(t *testing.T) {
	// One E in the answer, two misplaced Es in the guess: only the first
	// gets credit.
	wantMarks(t, marksOf(t, "SEES", "EARN"), MarkMiss, MarkPresent, MarkMiss, MarkMiss)
}

func TestScoreWordHebrew(t *testing.T) {
	wantMarks(t, marksOf(t, "מלוש", "שלומ"), MarkPresent, MarkHit, MarkHit, MarkPresent)
}

func TestScoreWordLengthMismatch(t *testing.T) {
	if _, err := ScoreWord("CARDS", "CARD"); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	// Rune count is what matters, not byte count.
	if _, err := ScoreWord("שלומ", "CARD"); err != nil {
		t.Fatalf("equal rune counts must score, got %v", err)
	}
}
