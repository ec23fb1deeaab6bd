// internal/puzzle/puzzle.go
//
// The playable unit: a solved square plus one riddle per row word.
//
// Responsibilities:
//   - Carry everything a client needs to run a round (and everything the
//     server must keep secret until then).
//   - Self-validate: a Puzzle read back from disk, the database or a
//     share code re-proves that its grid is a real symmetric word square
//     before anyone plays it.

package puzzle

import (
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-diceware/diceware"

	"github.com/noam-r/magic-four-squared/internal/riddle"
	"github.com/noam-r/magic-four-squared/internal/square"
	"github.com/noam-r/magic-four-squared/internal/words"
)

// Puzzle is one playable word square. Grid holds the rows as strings;
// Words[i] always equals Grid[i], kept separate so clients need no
// string slicing to show the word list.
type Puzzle struct {
	ID        string          `json:"id"`
	Language  words.Language  `json:"language"`
	Size      int             `json:"size"`
	Words     []string        `json:"words"`
	Grid      []string        `json:"grid"`
	Riddles   []riddle.Riddle `json:"riddles"`
	CreatedAt time.Time       `json:"createdAt"`
}

// New builds a Puzzle from a searched square and its riddles. The riddle
// list must align with the square's rows.
func New(lang words.Language, sq square.Square, riddles []riddle.Riddle) (*Puzzle, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	p := &Puzzle{
		ID:        id,
		Language:  lang,
		Size:      sq.Grid.Size(),
		Words:     append([]string(nil), sq.Words...),
		Grid:      sq.Grid.Rows(),
		Riddles:   append([]riddle.Riddle(nil), riddles...),
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// NewID returns a human-readable identifier like "ladder-ferret".
func NewID() (string, error) {
	list, err := diceware.Generate(2)
	if err != nil {
		return "", fmt.Errorf("puzzle: generate id: %w", err)
	}
	return strings.Join(list, "-"), nil
}

// SolutionGrid returns the grid as runes for cell-level feedback.
func (p *Puzzle) SolutionGrid() [][]rune {
	return square.GridFromRows(p.Grid)
}

// Validate re-proves the puzzle's structure: aligned words, riddles and
// grid rows, and a grid that passes the full square check against its
// own word list. Corrupt or tampered puzzles fail here, not in front of
// a player.
func (p *Puzzle) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("puzzle: missing id")
	}
	if p.Size < 2 {
		return fmt.Errorf("puzzle %s: size %d out of range", p.ID, p.Size)
	}
	if len(p.Words) != p.Size {
		return fmt.Errorf("puzzle %s: %d words for size %d", p.ID, len(p.Words), p.Size)
	}
	if len(p.Grid) != p.Size {
		return fmt.Errorf("puzzle %s: %d grid rows for size %d", p.ID, len(p.Grid), p.Size)
	}
	for i, w := range p.Words {
		if w != p.Grid[i] {
			return fmt.Errorf("puzzle %s: word %d %q does not match grid row %q", p.ID, i, w, p.Grid[i])
		}
	}
	if len(p.Riddles) != p.Size {
		return fmt.Errorf("puzzle %s: %d riddles for size %d", p.ID, len(p.Riddles), p.Size)
	}
	for i, r := range p.Riddles {
		if r.Word != p.Words[i] {
			return fmt.Errorf("puzzle %s: riddle %d targets %q, want %q", p.ID, i, r.Word, p.Words[i])
		}
		if r.Text == "" {
			return fmt.Errorf("puzzle %s: riddle %d has no text", p.ID, i)
		}
	}

	set, err := words.NewSet(p.Words, p.Size)
	if err != nil {
		return fmt.Errorf("puzzle %s: %w", p.ID, err)
	}
	if vs := square.Check(square.GridFromRows(p.Grid), set); len(vs) > 0 {
		return fmt.Errorf("puzzle %s: invalid square: %s", p.ID, vs[0].Message)
	}
	return nil
}
