// serve.go
//
// The serve subcommand: open the database, load word lists, wire the
// riddle provider, and run the HTTP server.

package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/noam-r/magic-four-squared/assets"
	"github.com/noam-r/magic-four-squared/internal/httpserver"
	"github.com/noam-r/magic-four-squared/internal/riddle"
	"github.com/noam-r/magic-four-squared/internal/store"
	"github.com/noam-r/magic-four-squared/internal/words"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", getEnv("PORT", "5175"), "listen port")
	dbPath := fs.String("db", getEnv("DB_PATH", "./data/magicsq.db"), "sqlite database path")
	_ = fs.Parse(args)

	db, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return err
	}

	srv := httpserver.New(
		store.NewMemorySessions(),
		store.NewPuzzleStore(db),
		loadWordSets(),
		serveRiddleGenerator(context.Background()),
	)
	log.Info().Str("port", *port).Str("db", *dbPath).Msg("starting magic-four-squared server")
	return srv.Start(":" + *port)
}

// loadWordSets builds one set per language from the embedded lists, with
// an optional per-language override from WORDS_FILE/WORDS_LANG.
func loadWordSets() map[words.Language]*words.Set {
	length := envInt("WORDS_LENGTH", 4)
	sets := make(map[words.Language]*words.Set)
	for _, lang := range []words.Language{words.English, words.Hebrew} {
		set, err := embeddedSet(lang, length)
		if err != nil {
			log.Warn().Err(err).Str("language", string(lang)).Msg("word list unavailable")
			continue
		}
		sets[lang] = set
	}
	if path := os.Getenv("WORDS_FILE"); path != "" {
		lang, err := words.ParseLanguage(getEnv("WORDS_LANG", "en"))
		if err != nil {
			log.Warn().Err(err).Msg("WORDS_LANG not recognized")
			return sets
		}
		set, err := words.Load(path, lang, length)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("words file not loaded")
			return sets
		}
		sets[lang] = set
	}
	return sets
}

// embeddedSet loads the packaged list for one language.
func embeddedSet(lang words.Language, length int) (*words.Set, error) {
	text, err := assets.WordList(string(lang))
	if err != nil {
		return nil, err
	}
	return words.FromLines(lang, length, text)
}

// serveRiddleGenerator wires Gemini when GCP_PROJECT_ID is set; template
// clues always sit behind it.
func serveRiddleGenerator(ctx context.Context) *riddle.Generator {
	fallback := riddle.NewTemplateProvider(0)
	project := os.Getenv("GCP_PROJECT_ID")
	if project == "" {
		return riddle.NewGenerator(nil, fallback)
	}
	p, err := riddle.NewGeminiProvider(ctx, project, os.Getenv("GCP_REGION"))
	if err != nil {
		log.Warn().Err(err).Msg("gemini unavailable; riddles fall back to templates")
		return riddle.NewGenerator(nil, fallback)
	}
	log.Info().Str("project", project).Msg("gemini riddle provider enabled")
	return riddle.NewGenerator(p, fallback)
}
