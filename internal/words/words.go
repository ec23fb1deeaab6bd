// internal/words/words.go
//
// Word normalization and word-set management for the square builder.
//
// Responsibilities:
//   - Normalize raw words into canonical comparable form (Unicode NFC,
//     uppercase, language-specific letter folding).
//   - Maintain a fixed-length Set with O(1) membership and a stable
//     iteration order.
//
// Constraints:
//   • Every word in a Set has exactly the Set's letter count.
//   • Normalization happens before a word enters a Set; lookups assume
//     already-normalized input.
//   • Hebrew word-final forms (ך ם ן ף ץ) are folded to their standard
//     forms so visually equivalent spellings compare equal; vowel points
//     and cantillation marks are dropped because lists are matched
//     unpointed.

package words

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Language selects which folding rules apply during normalization.
type Language string

const (
	English Language = "en"
	Hebrew  Language = "he"
)

// ParseLanguage maps a config/env string to a Language.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "en", "english":
		return English, nil
	case "he", "hebrew":
		return Hebrew, nil
	default:
		return "", fmt.Errorf("words: unknown language %q", s)
	}
}

// ErrLengthMismatch is returned when a word's letter count does not match
// the length the caller requires.
var ErrLengthMismatch = errors.New("words: length mismatch")

// hebrewFinals maps word-final letter forms to their standard forms.
var hebrewFinals = map[rune]rune{
	'ך': 'כ',
	'ם': 'מ',
	'ן': 'נ',
	'ף': 'פ',
	'ץ': 'צ',
}

// Normalize converts raw input into canonical form: trim, compose to NFC,
// uppercase, then apply language folding. The result is what Sets store
// and what guesses must be run through before comparison.
func Normalize(lang Language, raw string) string {
	s := norm.NFC.String(strings.TrimSpace(raw))
	s = strings.ToUpper(s)
	if lang == Hebrew {
		s = strings.Map(foldHebrew, s)
	}
	return s
}

// foldHebrew folds final letter forms and drops pointing marks
// (U+0591..U+05C7 covers cantillation and niqqud). Returning a negative
// rune tells strings.Map to remove the character.
func foldHebrew(r rune) rune {
	if std, ok := hebrewFinals[r]; ok {
		return std
	}
	if r >= 0x0591 && r <= 0x05C7 {
		return -1
	}
	return r
}

// Length returns the letter count of an already-normalized word.
// Counted in runes, which matches user-perceived letters for the
// supported scripts once NFC composition has run.
func Length(w string) int {
	return utf8.RuneCountInString(w)
}

// Set is an immutable collection of same-length words. Iteration order is
// insertion order, which downstream search relies on for reproducibility.
type Set struct {
	length int
	order  []string
	member map[string]struct{}
}

// NewSet builds a Set from normalized words. Duplicates are dropped
// silently; a word of the wrong length fails the whole construction with
// ErrLengthMismatch.
func NewSet(list []string, length int) (*Set, error) {
	if length <= 0 {
		return nil, fmt.Errorf("words: invalid word length %d", length)
	}
	s := &Set{
		length: length,
		member: make(map[string]struct{}, len(list)),
	}
	for _, w := range list {
		if n := Length(w); n != length {
			return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrLengthMismatch, w, n, length)
		}
		if _, dup := s.member[w]; dup {
			continue
		}
		s.member[w] = struct{}{}
		s.order = append(s.order, w)
	}
	return s, nil
}

// Contains reports whether w (already normalized) is in the set.
func (s *Set) Contains(w string) bool {
	_, ok := s.member[w]
	return ok
}

// Words returns the set's words in insertion order. The slice is a copy.
func (s *Set) Words() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of distinct words.
func (s *Set) Len() int {
	return len(s.order)
}

// Length returns the letter count every member shares.
func (s *Set) Length() int {
	return s.length
}
