// internal/config/config.go
//
// Generator run configuration, loaded from YAML. Everything has a flag
// override in the CLI; the file exists so a reproducible batch ("the
// February Hebrew set") is one committed document instead of a shell
// history entry.

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Generate describes one generator run.
type Generate struct {
	// Language selects normalization rules and the embedded fallback
	// list: "en" or "he".
	Language string `yaml:"language"`
	// WordsFile is the word list path; empty means the embedded list.
	WordsFile string `yaml:"words_file"`
	// Length is the word length and square side.
	Length int `yaml:"length"`
	// Count is how many squares to generate.
	Count int `yaml:"count"`
	// Seed fixes the search randomness; zero draws from the clock.
	Seed int64 `yaml:"seed"`
	// Order is the candidate-order policy: "first", "all" or "none".
	Order string `yaml:"order"`
	// Parallelism bounds concurrent search branches; 0 or 1 means
	// single-threaded.
	Parallelism int `yaml:"parallelism"`
	// Riddles selects the provider: "template" or "gemini".
	Riddles string `yaml:"riddles"`
	// GCPProject and GCPRegion configure the Gemini provider.
	GCPProject string `yaml:"gcp_project"`
	GCPRegion  string `yaml:"gcp_region"`
	// Output is the artifact path.
	Output string `yaml:"output"`
	// Publish stores generated puzzles into the database as published.
	Publish bool `yaml:"publish"`
	// DBPath is the SQLite file used when Publish is set.
	DBPath string `yaml:"db_path"`
}

// DefaultGenerate returns the defaults a run starts from before the file
// and flags are applied.
func DefaultGenerate() Generate {
	return Generate{
		Language: "en",
		Length:   4,
		Count:    1,
		Order:    "first",
		Riddles:  "template",
		Output:   "puzzles.json",
		DBPath:   "./data/magicsq.db",
	}
}

// LoadGenerate reads a YAML run configuration. Missing keys keep their
// defaults; the result is finalized.
func LoadGenerate(path string) (*Generate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg := DefaultGenerate()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Finalize normalizes and validates cross-field settings after loading.
func (c *Generate) Finalize() error {
	if c == nil {
		return fmt.Errorf("nil config")
	}

	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	c.Order = strings.ToLower(strings.TrimSpace(c.Order))
	c.Riddles = strings.ToLower(strings.TrimSpace(c.Riddles))
	c.WordsFile = strings.TrimSpace(c.WordsFile)
	c.Output = strings.TrimSpace(c.Output)

	if c.Length < 2 {
		return fmt.Errorf("config: length %d out of range", c.Length)
	}
	if c.Count < 1 {
		return fmt.Errorf("config: count %d out of range", c.Count)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("config: parallelism %d out of range", c.Parallelism)
	}
	switch c.Order {
	case "first", "all", "none":
	default:
		return fmt.Errorf("config: unknown order %q", c.Order)
	}
	switch c.Riddles {
	case "template":
	case "gemini":
		if c.GCPProject == "" {
			return fmt.Errorf("config: riddles=gemini requires gcp_project")
		}
	default:
		return fmt.Errorf("config: unknown riddles provider %q", c.Riddles)
	}
	if c.Output == "" {
		return fmt.Errorf("config: output path is empty")
	}
	return nil
}
