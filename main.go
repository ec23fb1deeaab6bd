// main.go
//
// Entry point for magic-four-squared. One binary, four subcommands:
//
//   serve     run the HTTP server (default)
//   generate  search word squares and write a puzzle artifact
//   validate  check a grid and print every violation
//   share     encode artifact puzzles to share codes and back
//
// Environment is loaded from .env first; LOG_LEVEL drives zerolog.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usage = `usage: magicsq <command> [flags]

commands:
  serve     run the HTTP server (default)
  generate  search word squares and write a puzzle artifact
  validate  check a grid and print every violation
  share     encode artifact puzzles to share codes and back
`

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "generate":
		err = runGenerate(args)
	case "validate":
		err = runValidate(args)
	case "share":
		err = runShare(args)
	case "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("command failed")
	}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
