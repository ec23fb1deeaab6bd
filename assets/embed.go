// assets/embed.go
//
// Embedded word lists, one file per language. Lines are raw dictionary
// entries; normalization (case, final letters, niqqud) happens in the
// words package when a list is loaded.

package assets

import (
	"embed"
	"fmt"
)

//go:embed words_en.txt words_he.txt
var FS embed.FS

// WordList returns the embedded word list text for a language code
// ("en", "he").
func WordList(lang string) (string, error) {
	b, err := FS.ReadFile("words_" + lang + ".txt")
	if err != nil {
		return "", fmt.Errorf("assets: no word list for language %q: %w", lang, err)
	}
	return string(b), nil
}
