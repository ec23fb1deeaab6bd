// internal/square/index.go
//
// First-letter index over a word set. The search extends a partial square
// one row at a time, and symmetry fixes the first letter of every later
// row, so "all words starting with X" is the hot lookup.

package square

import (
	"fmt"

	"github.com/noam-r/magic-four-squared/internal/words"
)

// entry pairs a word with its rune form so the search never re-decodes
// UTF-8 in the inner loop.
type entry struct {
	word  string
	runes []rune
}

// Index buckets a Set's words by first letter, preserving the Set's
// insertion order inside each bucket.
type Index struct {
	set     *words.Set
	length  int
	all     []entry
	byFirst map[rune][]entry
}

// NewIndex builds an Index over set. The Set already guarantees uniform
// length; the check here guards against a corrupted or hand-built set
// rather than silently producing unreachable buckets.
func NewIndex(set *words.Set) (*Index, error) {
	idx := &Index{
		set:     set,
		length:  set.Length(),
		byFirst: make(map[rune][]entry),
	}
	for _, w := range set.Words() {
		rs := []rune(w)
		if len(rs) != idx.length {
			return nil, fmt.Errorf("%w: %q has %d letters, want %d", words.ErrLengthMismatch, w, len(rs), idx.length)
		}
		e := entry{word: w, runes: rs}
		idx.all = append(idx.all, e)
		idx.byFirst[rs[0]] = append(idx.byFirst[rs[0]], e)
	}
	return idx, nil
}

// StartingWith returns every word whose first letter is r, in set order.
// Unknown letters yield an empty slice, not nil checks for the caller.
func (idx *Index) StartingWith(r rune) []string {
	bucket := idx.byFirst[r]
	out := make([]string, len(bucket))
	for i, e := range bucket {
		out[i] = e.word
	}
	return out
}

// Set returns the underlying word set.
func (idx *Index) Set() *words.Set { return idx.set }

// Len returns the number of indexed words.
func (idx *Index) Len() int { return len(idx.all) }

// Length returns the letter count shared by all indexed words, which is
// also the side length of any square built from them.
func (idx *Index) Length() int { return idx.length }
