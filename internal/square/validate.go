// internal/square/validate.go
//
// Grid validation. Two entry points with one rule set:
//
//   IsValid - boolean gate the search runs on every candidate square.
//   Check   - full report for editor input, returns every violation with
//             coordinates instead of stopping at the first.
//
// A valid square is mirror-symmetric (cell i,j equals cell j,i), every
// row is a word from the set, the rows are pairwise distinct, and every
// column is a word from the set. With symmetry in place the column check
// is implied by the row check, but both run anyway so a bug in one check
// cannot leak an invalid square.

package square

import (
	"fmt"

	"github.com/noam-r/magic-four-squared/internal/words"
)

// ViolationKind labels what a Violation is about.
type ViolationKind string

const (
	ViolationShape      ViolationKind = "shape"
	ViolationSymmetry   ViolationKind = "symmetry"
	ViolationRowWord    ViolationKind = "row_word"
	ViolationColumnWord ViolationKind = "column_word"
	ViolationDuplicate  ViolationKind = "duplicate_word"
)

// Violation describes one failed check. Row and Col are -1 when the axis
// does not apply (a row violation has no column, and vice versa).
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Row     int           `json:"row"`
	Col     int           `json:"col"`
	Word    string        `json:"word,omitempty"`
	Message string        `json:"message"`
}

// isShaped reports whether g is a fully filled size×size grid.
func (g Grid) isShaped(size int) bool {
	if len(g) != size {
		return false
	}
	for i := range g {
		if len(g[i]) != size {
			return false
		}
		for _, r := range g[i] {
			if r == 0 {
				return false
			}
		}
	}
	return true
}

// IsValid runs all four checks and reports the verdict. Used as the final
// gate on search output; Check is the explaining variant.
func IsValid(g Grid, set *words.Set) bool {
	size := set.Length()
	if !g.isShaped(size) {
		return false
	}
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g[i][j] != g[j][i] {
				return false
			}
		}
	}
	for i := 0; i < size; i++ {
		if !set.Contains(g.Row(i)) {
			return false
		}
	}
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g.Row(i) == g.Row(j) {
				return false
			}
		}
	}
	for j := 0; j < size; j++ {
		if !set.Contains(g.Column(j)) {
			return false
		}
	}
	return true
}

// Check validates g against set and returns every violation found. Shape
// problems are reported alone: the remaining checks assume a filled
// size×size grid and would produce noise on ragged input. For a
// well-shaped grid all four checks run without short-circuiting, so an
// editor sees the complete picture in one pass.
func Check(g Grid, set *words.Set) []Violation {
	size := set.Length()
	if vs := checkShape(g, size); len(vs) > 0 {
		return vs
	}

	var vs []Violation
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g[i][j] != g[j][i] {
				vs = append(vs, Violation{
					Kind:    ViolationSymmetry,
					Row:     i,
					Col:     j,
					Message: fmt.Sprintf("cell (%d,%d) is %q but mirror cell (%d,%d) is %q", i, j, string(g[i][j]), j, i, string(g[j][i])),
				})
			}
		}
	}
	for i := 0; i < size; i++ {
		if w := g.Row(i); !set.Contains(w) {
			vs = append(vs, Violation{
				Kind:    ViolationRowWord,
				Row:     i,
				Col:     -1,
				Word:    w,
				Message: fmt.Sprintf("row %d %q is not in the word list", i, w),
			})
		}
	}
	for i := 0; i < size; i++ {
		for j := i + 1; j < size; j++ {
			if g.Row(i) == g.Row(j) {
				vs = append(vs, Violation{
					Kind:    ViolationDuplicate,
					Row:     j,
					Col:     -1,
					Word:    g.Row(j),
					Message: fmt.Sprintf("rows %d and %d repeat the word %q", i, j, g.Row(j)),
				})
			}
		}
	}
	for j := 0; j < size; j++ {
		if w := g.Column(j); !set.Contains(w) {
			vs = append(vs, Violation{
				Kind:    ViolationColumnWord,
				Row:     -1,
				Col:     j,
				Word:    w,
				Message: fmt.Sprintf("column %d %q is not in the word list", j, w),
			})
		}
	}
	return vs
}

func checkShape(g Grid, size int) []Violation {
	var vs []Violation
	if len(g) != size {
		vs = append(vs, Violation{
			Kind:    ViolationShape,
			Row:     -1,
			Col:     -1,
			Message: fmt.Sprintf("grid has %d rows, want %d", len(g), size),
		})
		return vs
	}
	for i := range g {
		if len(g[i]) != size {
			vs = append(vs, Violation{
				Kind:    ViolationShape,
				Row:     i,
				Col:     -1,
				Message: fmt.Sprintf("row %d has %d cells, want %d", i, len(g[i]), size),
			})
			continue
		}
		for j, r := range g[i] {
			if r == 0 {
				vs = append(vs, Violation{
					Kind:    ViolationShape,
					Row:     i,
					Col:     j,
					Message: fmt.Sprintf("cell (%d,%d) is empty", i, j),
				})
			}
		}
	}
	return vs
}
