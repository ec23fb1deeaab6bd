// internal/feedback/word.go
//
// Whole-word scoring with duplicate-safe accounting.

package feedback

import "fmt"

// ScoreWord compares guess against answer position by position. Two
// passes keep repeated letters honest: the first pass takes exact hits
// and counts the answer letters those hits did not consume, the second
// pass hands out "present" only while unconsumed copies remain. A guess
// letter can never earn more credit than the answer actually contains.
//
// Both strings must be normalized the same way before the call; the
// letter counts must match or ErrLengthMismatch is returned.
func ScoreWord(guess, answer string) ([]LetterMark, error) {
	gr, ar := []rune(guess), []rune(answer)
	if len(gr) != len(ar) {
		return nil, fmt.Errorf("%w: guess has %d letters, answer has %d", ErrLengthMismatch, len(gr), len(ar))
	}

	out := make([]LetterMark, len(gr))
	remaining := make(map[rune]int, len(ar))

	// Pass 1: exact hits; everything else leaves its answer letter in
	// the remaining pool.
	for i, r := range gr {
		out[i] = LetterMark{Index: i, Char: string(r), Mark: MarkMiss}
		if r == ar[i] {
			out[i].Mark = MarkHit
		} else {
			remaining[ar[i]]++
		}
	}

	// Pass 2: misplaced letters consume from the pool, left to right.
	for i, r := range gr {
		if out[i].Mark == MarkHit {
			continue
		}
		if remaining[r] > 0 {
			out[i].Mark = MarkPresent
			remaining[r]--
		}
	}
	return out, nil
}
