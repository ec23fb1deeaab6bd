// generate.go
//
// The generate subcommand: load a word list, search for symmetric
// squares, attach riddles, and write the puzzle artifact. A YAML config
// carries the run; flags override individual fields. With -publish the
// puzzles also land in the database, ready for daily rotation.

package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/noam-r/magic-four-squared/internal/config"
	"github.com/noam-r/magic-four-squared/internal/puzzle"
	"github.com/noam-r/magic-four-squared/internal/riddle"
	"github.com/noam-r/magic-four-squared/internal/square"
	"github.com/noam-r/magic-four-squared/internal/store"
	"github.com/noam-r/magic-four-squared/internal/words"
)

func runGenerate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfgPath := fs.String("config", "", "YAML run configuration")
	lang := fs.String("lang", "", "language: en or he")
	wordsFile := fs.String("words", "", "word list path (default: embedded list)")
	length := fs.Int("length", 0, "word length and square side")
	count := fs.Int("count", 0, "how many squares to generate")
	seed := fs.Int64("seed", 0, "search seed (0 = clock)")
	order := fs.String("order", "", "candidate order: first, all or none")
	parallel := fs.Int("parallel", 0, "concurrent first-word branches")
	provider := fs.String("riddles", "", "riddle provider: template or gemini")
	project := fs.String("project", "", "GCP project for gemini")
	region := fs.String("region", "", "GCP region for gemini")
	output := fs.String("out", "", "artifact path")
	publish := fs.Bool("publish", false, "store generated puzzles as published")
	dbPath := fs.String("db", "", "sqlite database path for -publish")
	_ = fs.Parse(args)

	cfg := config.DefaultGenerate()
	if *cfgPath != "" {
		loaded, err := config.LoadGenerate(*cfgPath)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lang":
			cfg.Language = *lang
		case "words":
			cfg.WordsFile = *wordsFile
		case "length":
			cfg.Length = *length
		case "count":
			cfg.Count = *count
		case "seed":
			cfg.Seed = *seed
		case "order":
			cfg.Order = *order
		case "parallel":
			cfg.Parallelism = *parallel
		case "riddles":
			cfg.Riddles = *provider
		case "project":
			cfg.GCPProject = *project
		case "region":
			cfg.GCPRegion = *region
		case "out":
			cfg.Output = *output
		case "publish":
			cfg.Publish = *publish
		case "db":
			cfg.DBPath = *dbPath
		}
	})
	if err := cfg.Finalize(); err != nil {
		return err
	}
	lng, err := words.ParseLanguage(cfg.Language)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var set *words.Set
	if cfg.WordsFile != "" {
		set, err = words.Load(cfg.WordsFile, lng, cfg.Length)
	} else {
		set, err = embeddedSet(lng, cfg.Length)
	}
	if err != nil {
		return err
	}
	log.Info().Int("words", set.Len()).Str("language", cfg.Language).Int("length", cfg.Length).Msg("word list loaded")

	idx, err := square.NewIndex(set)
	if err != nil {
		return err
	}
	orderPolicy, _ := square.ParseOrderPolicy(cfg.Order)
	searcher := square.NewSearcher(idx, square.Options{
		Order:       orderPolicy,
		Seed:        cfg.Seed,
		Parallelism: cfg.Parallelism,
		Progress: func(ev square.Event) {
			log.Debug().Str("event", string(ev.Kind)).Str("firstWord", ev.FirstWord).Msg("search")
		},
	})

	start := time.Now()
	squares := searcher.Search(ctx, cfg.Count)
	if len(squares) == 0 {
		return fmt.Errorf("no %dx%d squares found in a %d-word list", cfg.Length, cfg.Length, set.Len())
	}
	log.Info().Int("found", len(squares)).Dur("elapsed", time.Since(start)).Msg("search finished")

	gen, closeGen, err := generatorFor(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeGen()

	doc := puzzle.NewDocument(lng, cfg.Length)
	for _, sq := range squares {
		p, err := puzzle.New(lng, sq, gen.ForWords(ctx, lng, sq.Words))
		if err != nil {
			return err
		}
		doc.Add(*p)
	}
	if err := puzzle.WriteArtifact(cfg.Output, doc); err != nil {
		return err
	}
	log.Info().Str("path", cfg.Output).Int("puzzles", len(doc.Puzzles)).Msg("artifact written")

	if cfg.Publish {
		return publishPuzzles(ctx, cfg.DBPath, doc)
	}
	return nil
}

// generatorFor builds the riddle generator the config asks for.
func generatorFor(ctx context.Context, cfg config.Generate) (*riddle.Generator, func(), error) {
	fallback := riddle.NewTemplateProvider(cfg.Seed)
	if cfg.Riddles != "gemini" {
		return riddle.NewGenerator(nil, fallback), func() {}, nil
	}
	p, err := riddle.NewGeminiProvider(ctx, cfg.GCPProject, cfg.GCPRegion)
	if err != nil {
		return nil, nil, err
	}
	return riddle.NewGenerator(p, fallback), func() { _ = p.Close() }, nil
}

// publishPuzzles stores the document's puzzles as published.
func publishPuzzles(ctx context.Context, dbPath string, doc *puzzle.Document) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.Migrate(db); err != nil {
		return err
	}
	ps := store.NewPuzzleStore(db)
	for i := range doc.Puzzles {
		if err := ps.Save(ctx, &doc.Puzzles[i], true); err != nil {
			return err
		}
	}
	log.Info().Int("puzzles", len(doc.Puzzles)).Str("db", dbPath).Msg("published")
	return nil
}
