// share.go
//
// The share subcommand: turn artifact puzzles into share codes and back.
//
//   magicsq share encode -artifact puzzles.json -index 0
//   magicsq share decode <code>

package main

import (
	"encoding/json"
	"flag"
	"fmt"

	"github.com/noam-r/magic-four-squared/internal/puzzle"
)

func runShare(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("share: want encode or decode")
	}
	mode, rest := args[0], args[1:]
	switch mode {
	case "encode":
		return runShareEncode(rest)
	case "decode":
		return runShareDecode(rest)
	}
	return fmt.Errorf("share: unknown mode %q", mode)
}

func runShareEncode(args []string) error {
	fs := flag.NewFlagSet("share encode", flag.ExitOnError)
	artifact := fs.String("artifact", "puzzles.json", "puzzle artifact path")
	index := fs.Int("index", 0, "puzzle index inside the artifact")
	_ = fs.Parse(args)

	doc, err := puzzle.ReadArtifact(*artifact)
	if err != nil {
		return err
	}
	if *index < 0 || *index >= len(doc.Puzzles) {
		return fmt.Errorf("index %d out of range, artifact holds %d puzzles", *index, len(doc.Puzzles))
	}
	code, err := puzzle.EncodeShare(&doc.Puzzles[*index])
	if err != nil {
		return err
	}
	fmt.Println(code)
	return nil
}

func runShareDecode(args []string) error {
	fs := flag.NewFlagSet("share decode", flag.ExitOnError)
	_ = fs.Parse(args)
	code := fs.Arg(0)
	if code == "" {
		return fmt.Errorf("share decode: want a code argument")
	}
	p, err := puzzle.DecodeShare(code)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}
