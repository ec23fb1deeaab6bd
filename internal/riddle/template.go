// internal/riddle/template.go
//
// Offline clue generation. Three clue shapes per language, built from the
// word itself: first/last letters, an anagram, or an inner letter pair.
// Not literary, but always available and answer-correct.

package riddle

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/noam-r/magic-four-squared/internal/words"
)

type clueShape int

const (
	shapeEdges clueShape = iota
	shapeAnagram
	shapeInner
	shapeCount
)

var clueFormats = map[words.Language][shapeCount]string{
	words.English: {
		shapeEdges:   "Starts with %s and ends with %s.",
		shapeAnagram: "An anagram of %s.",
		shapeInner:   "Has %s in the middle.",
	},
	words.Hebrew: {
		shapeEdges:   "מתחילה באות %s ומסתיימת באות %s.",
		shapeAnagram: "אנגרמה של %s.",
		shapeInner:   "מכילה באמצע את הצירוף %s.",
	},
}

// TemplateProvider generates clues locally. Safe for concurrent use.
type TemplateProvider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewTemplateProvider builds a provider; seed zero draws from the clock.
func NewTemplateProvider(seed int64) *TemplateProvider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &TemplateProvider{rnd: rand.New(rand.NewSource(seed))}
}

func (t *TemplateProvider) Name() string { return SourceTemplate }

// Riddle picks one of the clue shapes at random and fills it from word.
// Unknown languages fall back to the English formats.
func (t *TemplateProvider) Riddle(_ context.Context, lang words.Language, word string) (string, error) {
	rs := []rune(word)
	if len(rs) < 2 {
		return "", fmt.Errorf("riddle: word %q too short for a clue", word)
	}

	formats, ok := clueFormats[lang]
	if !ok {
		formats = clueFormats[words.English]
	}

	t.mu.Lock()
	shape := clueShape(t.rnd.Intn(int(shapeCount)))
	anagram := t.scramble(rs)
	t.mu.Unlock()

	switch shape {
	case shapeAnagram:
		return fmt.Sprintf(formats[shapeAnagram], anagram), nil
	case shapeInner:
		mid := len(rs) / 2
		return fmt.Sprintf(formats[shapeInner], string(rs[mid-1:mid+1])), nil
	default:
		return fmt.Sprintf(formats[shapeEdges], string(rs[0]), string(rs[len(rs)-1])), nil
	}
}

// scramble permutes the letters, retrying a few times so the clue does
// not just print the answer. Words like AAAA stay as they are; nothing
// better exists. Caller holds the mutex.
func (t *TemplateProvider) scramble(rs []rune) string {
	out := append([]rune(nil), rs...)
	for attempt := 0; attempt < 8; attempt++ {
		t.rnd.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
		if string(out) != string(rs) {
			break
		}
	}
	return string(out)
}
