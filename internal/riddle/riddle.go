// internal/riddle/riddle.go
//
// Riddle generation for puzzle words.
//
// Responsibilities:
//   - Define the Riddle value attached to each row word of a puzzle.
//   - Run a Provider (usually Gemini) with a per-word timeout and fall
//     back to locally generated template clues on any failure, so puzzle
//     generation never dies on a flaky or absent model.

package riddle

import (
	"context"
	"time"

	"github.com/noam-r/magic-four-squared/internal/words"
)

// Source values recorded on generated riddles.
const (
	SourceTemplate = "template"
	SourceGemini   = "gemini"
	SourceEditor   = "editor"
)

// Riddle is one clue. Word is the normalized answer it points at.
type Riddle struct {
	Word   string `json:"word"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// Provider produces a clue text for a single word.
type Provider interface {
	// Riddle returns the clue text for word in the given language.
	Riddle(ctx context.Context, lang words.Language, word string) (string, error)
	// Name identifies the provider in the Riddle.Source field.
	Name() string
}

const defaultPerWordTimeout = 20 * time.Second

// Generator turns word lists into riddle lists. A nil primary provider
// means template-only generation.
type Generator struct {
	primary  Provider
	fallback *TemplateProvider
	timeout  time.Duration
}

// NewGenerator builds a Generator. fallback must not be nil.
func NewGenerator(primary Provider, fallback *TemplateProvider) *Generator {
	return &Generator{
		primary:  primary,
		fallback: fallback,
		timeout:  defaultPerWordTimeout,
	}
}

// ForWords produces one riddle per word, in order. It never fails: words
// the primary provider cannot clue get a template clue instead.
func (g *Generator) ForWords(ctx context.Context, lang words.Language, ws []string) []Riddle {
	out := make([]Riddle, 0, len(ws))
	for _, w := range ws {
		out = append(out, g.forWord(ctx, lang, w))
	}
	return out
}

func (g *Generator) forWord(ctx context.Context, lang words.Language, w string) Riddle {
	if g.primary != nil {
		wctx, cancel := context.WithTimeout(ctx, g.timeout)
		text, err := g.primary.Riddle(wctx, lang, w)
		cancel()
		if err == nil && text != "" {
			return Riddle{Word: w, Text: text, Source: g.primary.Name()}
		}
	}
	text, _ := g.fallback.Riddle(ctx, lang, w)
	return Riddle{Word: w, Text: text, Source: g.fallback.Name()}
}
