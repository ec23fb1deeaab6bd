// internal/square/search.go
//
// Backtracking search for symmetric word squares.
//
// Responsibilities:
//   - Enumerate squares row by row: placing row k fixes column k by
//     symmetry, so row k+1 must start with letter k+1 of row 0 and match
//     the cells the earlier rows pinned down.
//   - Apply the candidate-order policy (where randomness enters).
//   - Report progress through an optional event callback.
//   - Optionally fan the first-row branches out across a bounded worker
//     pool.
//
// Each accepted square still passes through IsValid before it is
// returned. The construction cannot produce an asymmetric grid, but the
// gate means a future change to the row logic cannot quietly ship broken
// squares either.

package square

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// OrderPolicy controls which depths try their candidates in random order.
type OrderPolicy string

const (
	// ShuffleFirstWord randomizes only the order of row-0 words. Deeper
	// rows keep index order, so two runs with the same seed walk the
	// same tree. This is the default.
	ShuffleFirstWord OrderPolicy = "first"
	// ShuffleAllDepths randomizes candidate order at every depth.
	ShuffleAllDepths OrderPolicy = "all"
	// ShuffleNone keeps index order everywhere. Same input, same output,
	// regardless of seed.
	ShuffleNone OrderPolicy = "none"
)

// ParseOrderPolicy maps a config string to an OrderPolicy.
func ParseOrderPolicy(s string) (OrderPolicy, bool) {
	switch OrderPolicy(s) {
	case ShuffleFirstWord, ShuffleAllDepths, ShuffleNone:
		return OrderPolicy(s), true
	case "":
		return ShuffleFirstWord, true
	}
	return "", false
}

// EventKind labels a search progress event.
type EventKind string

const (
	// EventFirstWord fires when the search starts exploring a row-0 word.
	EventFirstWord EventKind = "first_word"
	// EventAccepted fires when a square passes the final validity gate.
	EventAccepted EventKind = "accepted"
	// EventExhausted fires when a row-0 word yields no square.
	EventExhausted EventKind = "exhausted"
)

// Event is one step of search progress. With Parallelism above one the
// Progress callback may be invoked from several goroutines at once.
type Event struct {
	Kind      EventKind
	FirstWord string
}

// Options tunes a Searcher. The zero value searches single-threaded with
// a time-based seed and the ShuffleFirstWord policy.
type Options struct {
	// Order picks the candidate-order policy. Empty means ShuffleFirstWord.
	Order OrderPolicy
	// Seed fixes the random source; zero draws from the clock.
	Seed int64
	// Parallelism is the number of concurrent first-word branches. Values
	// below two search single-threaded. Parallel runs may return results
	// in a different order from run to run, and when more squares exist
	// than were asked for, a different subset.
	Parallelism int
	// Progress, when set, receives search events.
	Progress func(Event)
}

// Searcher enumerates valid squares over an Index.
type Searcher struct {
	idx  *Index
	opts Options
}

// NewSearcher builds a Searcher over idx.
func NewSearcher(idx *Index, opts Options) *Searcher {
	if opts.Order == "" {
		opts.Order = ShuffleFirstWord
	}
	return &Searcher{idx: idx, opts: opts}
}

// Search collects up to max squares. Finding none is a normal outcome and
// returns an empty slice; cancelling ctx stops the walk and returns
// whatever was collected up to that point.
func (s *Searcher) Search(ctx context.Context, max int) []Square {
	if max <= 0 || s.idx.Len() == 0 {
		return nil
	}
	seed := s.opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(seed))

	firsts := append([]entry(nil), s.idx.all...)
	if s.opts.Order != ShuffleNone {
		rnd.Shuffle(len(firsts), func(i, j int) {
			firsts[i], firsts[j] = firsts[j], firsts[i]
		})
	}

	if s.opts.Parallelism > 1 {
		return s.searchParallel(ctx, firsts, max, seed)
	}

	out := make([]Square, 0, max)
	for _, first := range firsts {
		if len(out) >= max || ctx.Err() != nil {
			break
		}
		s.emit(Event{Kind: EventFirstWord, FirstWord: first.word})
		before := len(out)
		s.extend(ctx, []entry{first}, rnd, max, &out)
		if len(out) == before {
			s.emit(Event{Kind: EventExhausted, FirstWord: first.word})
		}
	}
	return out
}

// searchParallel fans first-word branches across an errgroup with a
// bounded limit. Each branch owns a random source derived from the run
// seed, so branches never share mutable random state. A branch collects
// up to max squares locally; the merged result is trimmed afterwards.
func (s *Searcher) searchParallel(ctx context.Context, firsts []entry, max int, seed int64) []Square {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g := new(errgroup.Group)
	g.SetLimit(s.opts.Parallelism)

	var mu sync.Mutex
	out := make([]Square, 0, max)

	for i, first := range firsts {
		if runCtx.Err() != nil {
			break
		}
		branchSeed := seed + int64(i) + 1
		g.Go(func() error {
			if runCtx.Err() != nil {
				return nil
			}
			s.emit(Event{Kind: EventFirstWord, FirstWord: first.word})
			branch := make([]Square, 0, 1)
			rnd := rand.New(rand.NewSource(branchSeed))
			s.extend(runCtx, []entry{first}, rnd, max, &branch)
			if len(branch) == 0 {
				s.emit(Event{Kind: EventExhausted, FirstWord: first.word})
				return nil
			}
			mu.Lock()
			out = append(out, branch...)
			done := len(out) >= max
			mu.Unlock()
			if done {
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(out) > max {
		out = out[:max]
	}
	return out
}

// extend tries every candidate for the next row of a partial square,
// recursing until all rows are placed. placed holds rows 0..k-1; cells
// 0..k-1 of row k are already pinned by symmetry with those rows.
func (s *Searcher) extend(ctx context.Context, placed []entry, rnd *rand.Rand, max int, out *[]Square) {
	k := len(placed)
	if k == s.idx.length {
		s.accept(placed, out)
		return
	}

	candidates := s.idx.byFirst[placed[0].runes[k]]
	if s.opts.Order == ShuffleAllDepths {
		shuffled := append([]entry(nil), candidates...)
		rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		candidates = shuffled
	}

	for _, cand := range candidates {
		if len(*out) >= max || ctx.Err() != nil {
			return
		}
		if !fits(placed, cand) || isRepeat(placed, cand) {
			continue
		}
		s.extend(ctx, append(placed, cand), rnd, max, out)
	}
}

// fits reports whether cand can be row k of the partial square: letter j
// of cand must equal letter k of row j for every placed row. Letter 0
// already matches through the first-letter bucket.
func fits(placed []entry, cand entry) bool {
	k := len(placed)
	for j := 1; j < k; j++ {
		if cand.runes[j] != placed[j].runes[k] {
			return false
		}
	}
	return true
}

// isRepeat reports whether cand is already one of the placed rows.
// Repeats can never survive the distinctness rule, so they are pruned
// before recursing rather than after building the full grid.
func isRepeat(placed []entry, cand entry) bool {
	for _, e := range placed {
		if e.word == cand.word {
			return true
		}
	}
	return false
}

// accept materializes a fully placed square, runs the validity gate and
// appends it to out.
func (s *Searcher) accept(placed []entry, out *[]Square) {
	g := make(Grid, len(placed))
	ws := make([]string, len(placed))
	for i, e := range placed {
		g[i] = append([]rune(nil), e.runes...)
		ws[i] = e.word
	}
	if !IsValid(g, s.idx.set) {
		return
	}
	*out = append(*out, Square{Grid: g, Words: ws})
	s.emit(Event{Kind: EventAccepted, FirstWord: ws[0]})
}

func (s *Searcher) emit(ev Event) {
	if s.opts.Progress != nil {
		s.opts.Progress(ev)
	}
}
