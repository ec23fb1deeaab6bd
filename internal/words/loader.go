// internal/words/loader.go
//
// Builds word Sets from files or embedded text. One word per line;
// blank lines and '#' comments are skipped, words of the wrong length
// are dropped rather than failing the load.

package words

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads a word list file and returns a Set of length-letter words.
// An empty result is an error: a square can never be built from nothing.
func Load(path string, lang Language, length int) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open list: %w", err)
	}
	defer f.Close()

	var kept []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if w, ok := keepLine(lang, length, sc.Text()); ok {
			kept = append(kept, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("words: read list: %w", err)
	}
	return finishSet(kept, length, path)
}

// FromLines builds a Set from an in-memory list, e.g. the embedded
// defaults. Same line rules as Load.
func FromLines(lang Language, length int, text string) (*Set, error) {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if w, ok := keepLine(lang, length, line); ok {
			kept = append(kept, w)
		}
	}
	return finishSet(kept, length, "embedded list")
}

// keepLine normalizes one input line and reports whether it belongs in a
// Set of the given length.
func keepLine(lang Language, length int, line string) (string, bool) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	w := Normalize(lang, line)
	if w == "" || Length(w) != length {
		return "", false
	}
	return w, true
}

func finishSet(kept []string, length int, source string) (*Set, error) {
	set, err := NewSet(kept, length)
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("words: %s has no %d-letter words", source, length)
	}
	return set, nil
}
