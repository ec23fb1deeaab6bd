// internal/feedback/feedback.go
//
// Letter feedback for guesses, in the familiar tile-coloring scheme:
//
//   hit     - right letter in the right position
//   present - letter exists elsewhere in the target
//   miss    - letter does not occur (or its occurrences are used up)
//
// Two scorers live here and they are deliberately separate algorithms:
// ScoreWord does whole-word multiset accounting, ScoreGrid applies a
// per-cell rule local to the solution row and column. See word.go and
// grid.go.

package feedback

import "errors"

// Mark is the color of one letter or cell.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

// ErrLengthMismatch is returned when a guess and its target word differ
// in letter count.
var ErrLengthMismatch = errors.New("feedback: length mismatch")

// ErrShapeMismatch is returned when a player grid and the solution grid
// have different dimensions.
var ErrShapeMismatch = errors.New("feedback: grid shapes differ")

// LetterMark is the verdict for one position of a word guess.
type LetterMark struct {
	Index int    `json:"index"`
	Char  string `json:"char"`
	Mark  Mark   `json:"mark"`
}

// CellMark is the verdict for one cell of a grid check.
type CellMark struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Char string `json:"char"`
	Mark Mark   `json:"mark"`
}

// AllHit reports whether every letter of a word verdict is a hit.
func AllHit(marks []LetterMark) bool {
	for _, m := range marks {
		if m.Mark != MarkHit {
			return false
		}
	}
	return len(marks) > 0
}

// AllCellsHit reports whether every cell of a grid verdict is a hit.
func AllCellsHit(marks [][]CellMark) bool {
	any := false
	for _, row := range marks {
		for _, m := range row {
			if m.Mark != MarkHit {
				return false
			}
			any = true
		}
	}
	return any
}
