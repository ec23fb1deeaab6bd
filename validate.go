// validate.go
//
// The validate subcommand: check that rows form a symmetric word square
// over a word list and print every violation.
//
//   magicsq validate card area rear dart
//   magicsq validate -json grid.json
//
// Exits non-zero when the grid has violations.

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/noam-r/magic-four-squared/internal/square"
	"github.com/noam-r/magic-four-squared/internal/words"
)

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	langF := fs.String("lang", "en", "language: en or he")
	wordsFile := fs.String("words", "", "word list path (default: embedded list)")
	jsonPath := fs.String("json", "", "JSON file holding an array of rows")
	_ = fs.Parse(args)

	lang, err := words.ParseLanguage(*langF)
	if err != nil {
		return err
	}

	rows := fs.Args()
	if *jsonPath != "" {
		b, err := os.ReadFile(*jsonPath)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(b, &rows); err != nil {
			return fmt.Errorf("parse %s: %w", *jsonPath, err)
		}
	}
	if len(rows) < 2 {
		return fmt.Errorf("need at least two rows, got %d", len(rows))
	}
	for i, r := range rows {
		rows[i] = words.Normalize(lang, r)
	}
	size := len(rows)

	var set *words.Set
	if *wordsFile != "" {
		set, err = words.Load(*wordsFile, lang, size)
	} else {
		set, err = embeddedSet(lang, size)
	}
	if err != nil {
		return err
	}

	vs := square.Check(square.GridFromRows(rows), set)
	if len(vs) == 0 {
		fmt.Printf("ok: %s is a valid %dx%d square\n", strings.Join(rows, "/"), size, size)
		return nil
	}
	for _, v := range vs {
		fmt.Printf("%s: %s\n", v.Kind, v.Message)
	}
	return fmt.Errorf("%d violation(s)", len(vs))
}
