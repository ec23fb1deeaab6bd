// internal/feedback/grid.go
//
// Per-cell scoring for a whole grid against the solution grid.

package feedback

import "fmt"

// ScoreGrid compares a player grid to the solution cell by cell. A cell
// that is not an exact hit counts as present when its letter occurs
// anywhere in the same solution row or the same solution column: each
// cell belongs to exactly one row word and one column word, and those
// two lines are where the letter could still be useful. There is no
// multiset accounting here; a letter that appears twice in the line can
// certify two player cells. Merging this rule with ScoreWord's would
// change reported colors, so the two stay independent.
//
// Empty player cells (zero rune) are reported as misses with an empty
// Char.
func ScoreGrid(player, solution [][]rune) ([][]CellMark, error) {
	if len(player) != len(solution) {
		return nil, fmt.Errorf("%w: player has %d rows, solution has %d", ErrShapeMismatch, len(player), len(solution))
	}
	for i := range player {
		if len(player[i]) != len(solution[i]) {
			return nil, fmt.Errorf("%w: row %d has %d cells, solution has %d", ErrShapeMismatch, i, len(player[i]), len(solution[i]))
		}
	}

	out := make([][]CellMark, len(player))
	for r := range player {
		out[r] = make([]CellMark, len(player[r]))
		for c, ch := range player[r] {
			cm := CellMark{Row: r, Col: c, Mark: MarkMiss}
			if ch == 0 {
				out[r][c] = cm
				continue
			}
			cm.Char = string(ch)
			switch {
			case ch == solution[r][c]:
				cm.Mark = MarkHit
			case lineContains(solution, r, c, ch):
				cm.Mark = MarkPresent
			}
			out[r][c] = cm
		}
	}
	return out, nil
}

// lineContains reports whether ch occurs in solution row r or solution
// column c.
func lineContains(solution [][]rune, r, c int, ch rune) bool {
	for _, sc := range solution[r] {
		if sc == ch {
			return true
		}
	}
	for i := range solution {
		if c < len(solution[i]) && solution[i][c] == ch {
			return true
		}
	}
	return false
}
