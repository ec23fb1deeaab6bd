// internal/square/grid.go
//
// Grid and Square value types shared by the search, the validator and the
// puzzle layer.

package square

// Grid is a rows-by-columns rune matrix. A zero rune marks an empty cell.
type Grid [][]rune

// NewGrid allocates an empty size×size grid.
func NewGrid(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]rune, size)
	}
	return g
}

// GridFromRows converts row strings into a Grid. No shape checking is done
// here; Check reports ragged or wrong-sized input as violations.
func GridFromRows(rows []string) Grid {
	g := make(Grid, len(rows))
	for i, row := range rows {
		g[i] = []rune(row)
	}
	return g
}

// Size returns the number of rows.
func (g Grid) Size() int { return len(g) }

// Row returns row i as a string.
func (g Grid) Row(i int) string { return string(g[i]) }

// Column returns column j as a string, reading only rows long enough to
// have a cell there.
func (g Grid) Column(j int) string {
	out := make([]rune, 0, len(g))
	for i := range g {
		if j < len(g[i]) {
			out = append(out, g[i][j])
		}
	}
	return string(out)
}

// Rows returns all rows as strings.
func (g Grid) Rows() []string {
	out := make([]string, len(g))
	for i := range g {
		out[i] = string(g[i])
	}
	return out
}

// Clone deep-copies the grid.
func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for i := range g {
		out[i] = append([]rune(nil), g[i]...)
	}
	return out
}

// Square is a completed, symmetric word square: Words[i] is row i of Grid,
// and by symmetry also column i.
type Square struct {
	Grid  Grid
	Words []string
}
